package plot

// Figure size in inches and dots per inch.
const (
	defaultWidth  = 20
	defaultHeight = 10
	defaultDPI    = 100
)

// Rect is a placement in fractions of the parent: the figure for top-level
// axes, the parent axes for insets. X and Y are the lower-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Window is the data range shown by an axes.
type Window struct {
	XMin, XMax, YMin, YMax float64
}

var (
	// subplot area of a single-axes figure
	mainRect = Rect{0.125, 0.11, 0.775, 0.77}

	continentalWindow = Window{-130, -64, 22, 53}

	alaskaRect   = Rect{.08, .012, .20, .28}
	alaskaWindow = Window{-180, -127, 51, 72}

	hawaiiRect   = Rect{.28, .014, .15, .19}
	hawaiiWindow = Window{-160, -154.6, 18.8, 22.5}

	puertoRicoRect   = Rect{.512, .03, .11, .11}
	puertoRicoWindow = Window{-67.4, -65.1, 17.55, 18.9}

	guamRect   = Rect{.612, .03, .10, .15}
	guamWindow = Window{144.55, 145, 13.2, 13.7}

	colorbarRect = Rect{.93, .03, .014, .5}

	// lower-left corner of the legend box, in axes fractions
	legendLoc = [2]float64{.87, .06}
)

// Regions drawn on their own insets instead of the continental axes.
var insetCodes = []string{"AK", "HI", "PR", "GU"}
