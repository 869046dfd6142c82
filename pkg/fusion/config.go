package fusion

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example config file ...

fuser: directional
tonescale: 1.0
autotonescale: false
estimateresponses: true
fitresponseoffset: false
dispatcher: rows
workers: 0
responses:
  darker:   {gain: 1.8, offset: 0}
  base:     {gain: 1.0, offset: 0}
  brighter: {gain: 0.6, offset: 0}

*/

// Config is fixed for the duration of a fusion pass. It is handed by
// value to everything that needs it.
type Config struct {
	Verbosity int

	Fuser     string    // see Fusers
	Responses Responses // per-exposure affine corrections onto the base exposure
	ToneScale float64   // Reinhard constant; bigger compresses highlights harder

	AutoToneScale     bool // derive ToneScale from the log-average luminance
	EstimateResponses bool // fit Responses.Darker and .Brighter against the base
	FitResponseOffset bool // fit gain and offset, instead of gain through the origin

	Dispatcher string // how to fan the kernel out over the image; see dispatch.Names
	Workers    int    // 0 means one per CPU
}

func NewConfig() Config {
	return Config{
		Fuser:      "directional",
		Responses:  IdentityResponses(),
		ToneScale:  DefaultToneScale,
		Dispatcher: "rows",
	}
}

// NewConfigFromYaml overlays the YAML onto the defaults, so a file only
// needs to mention what it changes.
func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read '%s': %w", filename, err)
	}

	c, err := NewConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config '%s': %w", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Printf("Can't marshal config yaml: %v\n", err)
		return ""
	}
	return string(b)
}

// Validate checks the values the kernel relies on. It doesn't know
// about dispatcher names; the dispatch package checks those.
func (c Config) Validate() error {
	if _, err := LookupFuser(c.Fuser); err != nil {
		return err
	}
	if c.ToneScale < 0 {
		return fmt.Errorf("tonescale %f is negative", c.ToneScale)
	}
	for e := Darker; e <= Brighter; e++ {
		if r := c.Responses.For(e); r.Gain <= 0 {
			return fmt.Errorf("%s response gain %f must be positive", e, r.Gain)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative", c.Workers)
	}
	return nil
}
