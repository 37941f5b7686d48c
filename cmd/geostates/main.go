package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"geostates/internal/config"
	"geostates/internal/geom"
	"geostates/internal/logging"
	"geostates/internal/plot"
	"geostates/internal/region"
	"geostates/internal/shapefiles"
	"geostates/internal/tui"
)

var (
	configPath = flag.String("config", "", "config `file` (default geostates.yaml in . or ./configs)")
	envFile    = flag.String("env", ".env", "dotenv `file` loaded before the config")
	dataDir    = flag.String("data", "", "shapefile `directory` holding the cb_2018 state and county files")
	geojson    = flag.String("geojson", "", "state boundaries as a GeoJSON `file` instead of the shapefile")
	geoKey     = flag.String("geokey", "STUSPS", "feature `property` holding the postal code in -geojson")
	values     = flag.String("values", "", "CSV `file` of values joined onto the states by code")
	key        = flag.String("key", "", "code `column` of -values (default: detect)")
	column     = flag.String("column", "", "value `column` to color by (default: first column of -values)")
	labels     = flag.String("labels", "", "label `mode`: postal, values or both")
	lineStyle  = flag.String("linestyle", "", "inset border `style`: solid, dashed or none")
	cmap       = flag.String("cmap", "", "colormap `name`")
	legend     = flag.String("legend", "", "legend `mode`: legend or colorbar")
	bins       = flag.Int("bins", 0, "number of color `bins` for the legend")
	extra      = flag.Bool("extra", false, "draw Puerto Rico and Guam insets")
	out        = flag.String("o", "", "output `file` (.svg or .png)")
	useTUI     = flag.Bool("tui", false, "preview in the terminal instead of writing a file")
	state      = flag.String("state", "", "list the counties of the state with this postal `code` and exit")
	at         = flag.String("at", "", "print the state containing `lon,lat` and exit")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// a missing .env is fine
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var w io.WriteCloser
	if *useTUI && cfg.Log.File == "" {
		w = nopCloser{io.Discard}
	} else if w, err = logging.Open(cfg.Log.File); err != nil {
		return err
	}
	defer w.Close()
	logging.Setup(w, cfg.Log.Level, cfg.Log.Format)

	if *state != "" {
		return listCounties(cfg.Data.Dir, *state)
	}

	states, err := loadStates(cfg)
	if err != nil {
		return err
	}
	col, err := joinValues(states, cfg)
	if err != nil {
		return err
	}

	if *at != "" {
		return locate(states, *at, col)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if *useTUI {
		return tui.Run(tui.New(states, col, opts, cfg.Output.Path))
	}

	ax, err := plot.PlotStates(states, col, opts)
	if err != nil {
		return err
	}
	if err := ax.Figure().Save(cfg.Output.Path); err != nil {
		return err
	}
	slog.Info("figure_written", "path", cfg.Output.Path, "column", col, "states", states.Len())
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// applyFlags overrides config values with the flags given on the command
// line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Data.Dir = *dataDir
		case "values":
			cfg.Data.Values = *values
		case "key":
			cfg.Data.Key = *key
		case "column":
			cfg.Data.Column = *column
		case "labels":
			cfg.Render.Labels = *labels
		case "linestyle":
			cfg.Render.LineStyle = *lineStyle
		case "cmap":
			cfg.Render.Colormap = *cmap
		case "legend":
			cfg.Render.Legend = *legend
		case "bins":
			cfg.Render.Bins = *bins
		case "extra":
			cfg.Render.ExtraRegions = *extra
		case "o":
			cfg.Output.Path = *out
		}
	})
}

func loadStates(cfg *config.Config) (*region.Collection, error) {
	if *geojson == "" {
		return shapefiles.LoadStates(cfg.Data.Dir)
	}
	feats, err := geom.LoadGeoJSON(*geojson)
	if err != nil {
		return nil, err
	}
	c, err := region.FromFeatures(feats, *geoKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *geojson, err)
	}
	slog.Info("states_loaded", "path", *geojson, "count", c.Len())
	return c, nil
}

// joinValues joins the values CSV, if any, and returns the column to color
// by.
func joinValues(states *region.Collection, cfg *config.Config) (string, error) {
	col := cfg.Data.Column
	if cfg.Data.Values == "" {
		return col, nil
	}
	t, cols, err := geom.LoadValues(cfg.Data.Values, cfg.Data.Key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cfg.Data.Values, err)
	}
	if unmatched := states.Join(t); len(unmatched) > 0 {
		slog.Warn("values_unmatched", "codes", strings.Join(unmatched, ","))
	}
	if col == "" && len(cols) > 0 {
		col = cols[0]
	}
	slog.Info("values_joined", "path", cfg.Data.Values, "columns", strings.Join(cols, ","), "column", col)
	return col, nil
}

func listCounties(dir, postal string) error {
	counties, err := shapefiles.GetState(dir, strings.ToUpper(postal))
	if err != nil {
		return err
	}
	for _, r := range counties.Regions() {
		fmt.Printf("%s\t%s\n", r.Code, r.Name())
	}
	return nil
}

func locate(states *region.Collection, lonlat, col string) error {
	parts := strings.Split(lonlat, ",")
	if len(parts) != 2 {
		return fmt.Errorf("-at: want lon,lat, got %q", lonlat)
	}
	lon, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lat, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err := errors.Join(err1, err2); err != nil {
		return fmt.Errorf("-at: %w", err)
	}
	r, ok := region.NewIndex(states).At(lon, lat)
	if !ok {
		return fmt.Errorf("no state at %g,%g", lon, lat)
	}
	line := r.Code + "\t" + r.Name()
	if v, err := r.Value(col); col != "" && err == nil {
		line += "\t" + plot.FormatValue(v)
	}
	fmt.Println(line)
	return nil
}
