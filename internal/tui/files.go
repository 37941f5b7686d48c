package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geostates/internal/geom"
	"geostates/internal/region"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func supported(ext string) bool {
	switch ext {
	case ".geojson", ".json", ".csv", ".kml", ".shp", ".wkt":
		return true
	}
	return false
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if supported(ext) {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// keyProps are tried in order to key the features of a boundary file.
var keyProps = []string{"STUSPS", "postal", "code", "STATE_ABBR", "NAME", "name"}

func detectKey(feats []geom.Feature) (string, bool) {
	for _, k := range keyProps {
		for _, f := range feats {
			if f.Props[k] != "" {
				return k, true
			}
		}
	}
	return "", false
}

// loadPath loads a value table (.csv) onto the current states, or replaces
// the states with the regions of a boundary file.
func (m *Model) loadPath(p string) {
	m.selPath = p
	ext := strings.ToLower(filepath.Ext(p))
	var feats []geom.Feature
	var err error
	switch ext {
	case ".csv":
		if m.states == nil {
			m.status = "load boundaries before values"
			return
		}
		t, cols, err := geom.LoadValues(p, "")
		if err != nil {
			m.status = "load error: " + err.Error()
			return
		}
		unmatched := m.states.Join(t)
		if len(cols) > 0 {
			m.column = cols[0]
		}
		m.setStates(m.states)
		m.status = fmt.Sprintf("joined %s  columns=%s unmatched=%d", filepath.Base(p), strings.Join(cols, ","), len(unmatched))
		return
	case ".geojson", ".json":
		feats, err = geom.LoadGeoJSON(p)
	case ".kml":
		feats, err = geom.LoadKML(p)
	case ".shp":
		feats, err = geom.LoadShapefile(p)
	case ".wkt":
		feats, err = geom.LoadWKT(p)
	default:
		m.status = "unsupported file: " + ext
		return
	}
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	key, ok := detectKey(feats)
	if !ok {
		m.status = "no region code property in " + filepath.Base(p)
		return
	}
	c, err := region.FromFeatures(feats, key)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.setStates(c)
	if m.renderErr == nil {
		m.status = fmt.Sprintf("loaded: %s  regions=%d key=%s", filepath.Base(p), c.Len(), key)
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
}
