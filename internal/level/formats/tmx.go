package formats

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// Tiled stores flip flags in the top bits of each gid.
const tmxFlipMask = 0x1FFFFFFF

const tmxTriggerLayer = "triggers"

type tmxMap struct {
	XMLName      xml.Name         `xml:"map"`
	Orientation  string           `xml:"orientation,attr"`
	Width        int              `xml:"width,attr"`
	Height       int              `xml:"height,attr"`
	TileWidth    int              `xml:"tilewidth,attr"`
	TileHeight   int              `xml:"tileheight,attr"`
	Properties   []tmxProperty    `xml:"properties>property"`
	Tilesets     []tmxTileset     `xml:"tileset"`
	Layers       []tmxLayer       `xml:"layer"`
	ObjectGroups []tmxObjectGroup `xml:"objectgroup"`
}

type tmxProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type tmxTileset struct {
	FirstGID int       `xml:"firstgid,attr"`
	Name     string    `xml:"name,attr"`
	Tiles    []tmxTile `xml:"tile"`
}

type tmxTile struct {
	ID         int           `xml:"id,attr"`
	Type       string        `xml:"type,attr"`
	Properties []tmxProperty `xml:"properties>property"`
}

type tmxLayer struct {
	Name   string  `xml:"name,attr"`
	Width  int     `xml:"width,attr"`
	Height int     `xml:"height,attr"`
	Data   tmxData `xml:"data"`
}

type tmxData struct {
	Encoding    string        `xml:"encoding,attr"`
	Compression string        `xml:"compression,attr"`
	Inner       string        `xml:",chardata"`
	Tiles       []tmxDataTile `xml:"tile"`
}

type tmxDataTile struct {
	GID uint32 `xml:"gid,attr"`
}

type tmxObjectGroup struct {
	Name    string      `xml:"name,attr"`
	Objects []tmxObject `xml:"object"`
}

type tmxObject struct {
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	GID        uint32        `xml:"gid,attr"`
	X          float64       `xml:"x,attr"`
	Y          float64       `xml:"y,attr"`
	Width      float64       `xml:"width,attr"`
	Height     float64       `xml:"height,attr"`
	Properties []tmxProperty `xml:"properties>property"`
}

// ParseTMX parses an orthogonal Tiled map.
//
// Tile layers other than "triggers" are drawn, later layers on top. Tags come
// from tileset tile properties (for tiles placed on any layer) and from the
// properties of objects in the "triggers" object group; an object tags every
// grid cell it covers. The map-level "id" and "name" properties name the level.
func ParseTMX(data []byte) (Level, error) {
	var tm tmxMap
	if err := xml.Unmarshal(data, &tm); err != nil {
		return Level{}, fmt.Errorf("tmx unmarshal: %w", err)
	}
	if tm.Orientation != "" && tm.Orientation != "orthogonal" {
		return Level{}, fmt.Errorf("tmx: unsupported orientation %q", tm.Orientation)
	}
	if tm.Width <= 0 || tm.Height <= 0 || tm.TileWidth <= 0 || tm.TileHeight <= 0 {
		return Level{}, fmt.Errorf("tmx: invalid size %dx%d tiles of %dx%d",
			tm.Width, tm.Height, tm.TileWidth, tm.TileHeight)
	}

	m := tilemap.New(tm.Width, tm.Height, tm.TileWidth, tm.TileHeight)
	tileProps := tm.tileProperties()

	for _, layer := range tm.Layers {
		gids, err := layer.Data.decode(tm.Width * tm.Height)
		if err != nil {
			return Level{}, fmt.Errorf("tmx layer %q: %w", layer.Name, err)
		}
		isTriggers := strings.EqualFold(layer.Name, tmxTriggerLayer)

		for i, raw := range gids {
			gid := int(raw & tmxFlipMask)
			if gid == 0 {
				continue
			}
			col, row := i%tm.Width, i/tm.Width
			props := tileProps[gid]
			m.Triggers.Set(col, row, tagProps(props))
			if isTriggers {
				continue
			}
			kind := tilemap.TileGround
			if k, ok := ParseTileKind(props["kind"]); ok && props["kind"] != "" {
				kind = k
			}
			m.Tiles.Set(col, row, kind)
		}
	}

	for _, group := range tm.ObjectGroups {
		if !strings.EqualFold(group.Name, tmxTriggerLayer) {
			continue
		}
		for _, obj := range group.Objects {
			props := propertyMap(obj.Properties)
			if obj.Type != "" && !props.Has(obj.Type) {
				props[obj.Type] = ""
			}
			if obj.GID != 0 {
				for k, v := range tileProps[int(obj.GID&tmxFlipMask)] {
					if _, exists := props[k]; !exists {
						props[k] = v
					}
				}
			}
			tagObject(m, tm, obj, tagProps(props))
		}
	}

	meta := propertyMap(tm.Properties)
	return Level{
		ID:       meta.Get("id"),
		Name:     meta.Get("name"),
		Map:      m,
		Metadata: meta,
	}, nil
}

// tagObject tags every cell the object covers. Tile objects are anchored at
// their bottom-left corner; point objects tag the single cell they sit in.
// Parts of the object outside the grid are ignored.
func tagObject(m *tilemap.Map, tm tmxMap, obj tmxObject, props tilemap.Properties) {
	if len(props) == 0 {
		return
	}
	top := obj.Y
	if obj.GID != 0 {
		top = obj.Y - obj.Height
	}

	c0, c1 := cellSpan(obj.X, obj.Width, float64(tm.TileWidth), tm.Width)
	r0, r1 := cellSpan(top, obj.Height, float64(tm.TileHeight), tm.Height)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			m.Triggers.Set(col, row, props)
		}
	}
}

// cellSpan returns the first and last of n cells of the given size that the
// span [start, start+length) touches, clamped to the grid. An empty span is
// a point. first > last when nothing is inside the grid.
func cellSpan(start, length, size float64, n int) (first, last int) {
	lo := math.Floor(start / size)
	hi := lo
	if length > 0 {
		hi = math.Ceil((start+length)/size) - 1
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, -1
	}
	lo = math.Min(math.Max(lo, 0), float64(n))
	hi = math.Max(math.Min(hi, float64(n-1)), -1)
	return int(lo), int(hi)
}

// tagProps strips the visual-only "kind" property from a tag set.
func tagProps(props tilemap.Properties) tilemap.Properties {
	if len(props) == 0 {
		return nil
	}
	out := make(tilemap.Properties, len(props))
	for k, v := range props {
		if k == "kind" {
			continue
		}
		out[k] = v
	}
	return out
}

func (tm tmxMap) tileProperties() map[int]tilemap.Properties {
	out := make(map[int]tilemap.Properties)
	for _, ts := range tm.Tilesets {
		for _, tile := range ts.Tiles {
			props := propertyMap(tile.Properties)
			if tile.Type != "" && !props.Has("kind") {
				props["kind"] = tile.Type
			}
			if len(props) > 0 {
				out[ts.FirstGID+tile.ID] = props
			}
		}
	}
	return out
}

func propertyMap(list []tmxProperty) tilemap.Properties {
	props := make(tilemap.Properties, len(list))
	for _, p := range list {
		props[p.Name] = p.Value
	}
	return props
}

func (d tmxData) decode(n int) ([]uint32, error) {
	var gids []uint32
	switch d.Encoding {
	case "":
		gids = make([]uint32, 0, len(d.Tiles))
		for _, t := range d.Tiles {
			gids = append(gids, t.GID)
		}
	case "csv":
		fields := strings.FieldsFunc(d.Inner, func(r rune) bool {
			return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
		})
		gids = make([]uint32, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("csv gid %q: %w", f, err)
			}
			gids = append(gids, uint32(v))
		}
	case "base64":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(d.Inner))
		if err != nil {
			return nil, fmt.Errorf("base64: %w", err)
		}
		raw, err = decompress(raw, d.Compression)
		if err != nil {
			return nil, err
		}
		if len(raw)%4 != 0 {
			return nil, fmt.Errorf("base64 payload of %d bytes is not a gid array", len(raw))
		}
		gids = make([]uint32, len(raw)/4)
		for i := range gids {
			gids[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
	default:
		return nil, fmt.Errorf("unsupported encoding %q", d.Encoding)
	}

	if len(gids) != n {
		return nil, fmt.Errorf("expected %d tiles, got %d", n, len(gids))
	}
	return gids, nil
}

func decompress(raw []byte, compression string) ([]byte, error) {
	var r io.ReadCloser
	var err error
	switch compression {
	case "":
		return raw, nil
	case "zlib":
		r, err = zlib.NewReader(bytes.NewReader(raw))
	case "gzip":
		r, err = gzip.NewReader(bytes.NewReader(raw))
	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", compression, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}
