package env

// Layout identifies which optional features an observation carries.
// It is fixed at construction; the forecast-without-seasonal
// combination is not a supported layout and is rejected by New.
type Layout int

const (
	// LayoutBasic: storage level + normalized consumption/production.
	LayoutBasic Layout = iota
	// LayoutSeasonal adds the distance-to-equinox signal.
	LayoutSeasonal
	// LayoutFull adds the 24h/48h production forecast averages.
	LayoutFull
)

func (l Layout) String() string {
	switch l {
	case LayoutBasic:
		return "basic"
	case LayoutSeasonal:
		return "seasonal"
	case LayoutFull:
		return "full"
	default:
		return "unknown"
	}
}

// layoutFor maps the two feature flags onto the closed layout set.
func layoutFor(f Flags) (Layout, error) {
	switch {
	case f.SeasonalSignal && f.ProductionForecast:
		return LayoutFull, nil
	case f.SeasonalSignal:
		return LayoutSeasonal, nil
	case !f.ProductionForecast:
		return LayoutBasic, nil
	default:
		return 0, &ConfigurationError{Reason: "production forecast requires the seasonal signal"}
	}
}

// Shape describes one observation component, mirroring the input
// dimensions a learner's network is built from.
type Shape []int

// Observation is one snapshot of the environment. Fields beyond the
// first three are meaningful only for the layouts that include them.
// It has no reference fields, so a struct copy is a full copy.
type Observation struct {
	Layout Layout `json:"layout"`

	// StorageLevel is the short-term buffer fill fraction in [0,1].
	StorageLevel float64 `json:"storage_level"`
	// Consumption and Production are the normalized profiles at the
	// cursor, in [0,1].
	Consumption float64 `json:"consumption"`
	Production  float64 `json:"production"`

	// DistanceToEquinox in [0,1]; seasonal and full layouts only.
	DistanceToEquinox float64 `json:"distance_to_equinox,omitempty"`
	// Forecast24/Forecast48 are mean normalized production over the
	// next 24/48 hours; full layout only.
	Forecast24 float64 `json:"forecast_24h,omitempty"`
	Forecast48 float64 `json:"forecast_48h,omitempty"`
}

// InputDimensions returns the per-component shapes for a layout.
// The (12,2) component is the consumption/production history window
// the reference feeds its network.
func (l Layout) InputDimensions() []Shape {
	dims := []Shape{{1}, {12, 2}}
	switch l {
	case LayoutSeasonal:
		dims = append(dims, Shape{1})
	case LayoutFull:
		dims = append(dims, Shape{1}, Shape{1, 2})
	}
	return dims
}
