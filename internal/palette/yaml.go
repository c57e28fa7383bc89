package palette

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlHSV mirrors HSVRange for config files. The upper saturation/value
// bounds are optional and default to 1 when omitted.
type yamlHSV struct {
	HueLo float64  `yaml:"hue_lo"`
	HueHi float64  `yaml:"hue_hi"`
	SatLo float64  `yaml:"sat_lo"`
	SatHi *float64 `yaml:"sat_hi"`
	ValLo float64  `yaml:"val_lo"`
	ValHi *float64 `yaml:"val_hi"`
}

type yamlRGB struct {
	R         uint8 `yaml:"r"`
	G         uint8 `yaml:"g"`
	B         uint8 `yaml:"b"`
	Tolerance uint8 `yaml:"tolerance"`
}

type yamlColor struct {
	Name string   `yaml:"name"`
	HSV  *yamlHSV `yaml:"hsv"`
	RGB  *yamlRGB `yaml:"rgb"`
}

// UnmarshalYAML decodes a palette color from a config file entry of the form
//
//	name: Green
//	hsv: {hue_lo: 80, hue_hi: 160, sat_lo: 0.15, val_lo: 0.55}
//
// or
//
//	name: Pink
//	rgb: {r: 255, g: 160, b: 249, tolerance: 40}
func (c *ReferenceColor) UnmarshalYAML(node *yaml.Node) error {
	var raw yamlColor
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.HSV != nil && raw.RGB != nil {
		return fmt.Errorf("palette color %q: hsv and rgb are mutually exclusive", raw.Name)
	}

	out := ReferenceColor{Name: raw.Name}
	switch {
	case raw.HSV != nil:
		band := HSVRange{
			HueLo: raw.HSV.HueLo,
			HueHi: raw.HSV.HueHi,
			SatLo: raw.HSV.SatLo,
			SatHi: 1,
			ValLo: raw.HSV.ValLo,
			ValHi: 1,
		}
		if raw.HSV.SatHi != nil {
			band.SatHi = *raw.HSV.SatHi
		}
		if raw.HSV.ValHi != nil {
			band.ValHi = *raw.HSV.ValHi
		}
		out.HSV = &band
	case raw.RGB != nil:
		out.RGB = &RGBPoint{R: raw.RGB.R, G: raw.RGB.G, B: raw.RGB.B, Tolerance: raw.RGB.Tolerance}
	}
	*c = out
	return nil
}
