package vkboot

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-version"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DebugReportExtension is the instance extension the debug callback needs.
const DebugReportExtension = "VK_EXT_debug_report"

// PortabilityEnumerationExtension lets portability drivers (MoltenVK) be enumerated.
const PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"

// Policy selects which capability-suitable physical devices are accepted.
type Policy int

const (
	// PolicyAuto is PolicyDiscreteOnly when a surface is bound and
	// PolicyFirstSuitable otherwise.
	PolicyAuto Policy = iota
	// PolicyFirstSuitable accepts the first device with the required queues.
	PolicyFirstSuitable
	// PolicyDiscreteOnly additionally requires a discrete GPU.
	PolicyDiscreteOnly
)

// Resolve returns the concrete policy used when selecting against surface.
func (p Policy) Resolve(surface Surface) Policy {
	if p != PolicyAuto {
		return p
	}
	if surface != nil {
		return PolicyDiscreteOnly
	}
	return PolicyFirstSuitable
}

func (p Policy) String() string {
	switch p {
	case PolicyAuto:
		return "auto"
	case PolicyFirstSuitable:
		return "first"
	case PolicyDiscreteOnly:
		return "discrete"
	}
	return "unknown"
}

// ParsePolicy parses the names produced by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return PolicyAuto, nil
	case "first":
		return PolicyFirstSuitable, nil
	case "discrete":
		return PolicyDiscreteOnly, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown device policy %q (want auto, first or discrete)", s)
}

// WindowConfig describes the window the command line front end opens.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// Config is the complete, explicit configuration of a Renderer.
type Config struct {
	AppName       string
	AppVersion    Version
	EngineName    string
	EngineVersion Version
	APIVersion    Version

	// Diagnostics enables the validation layers and the debug report callback.
	Diagnostics      bool
	ValidationLayers []string

	Policy Policy
	// ExcludeDevices skips physical devices whose name contains any entry.
	ExcludeDevices []string

	Window WindowConfig
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		AppName:          "Vulkan App",
		AppVersion:       Version{1, 0, 0},
		EngineName:       "No Engine",
		EngineVersion:    Version{1, 0, 0},
		APIVersion:       Version{1, 1, 0},
		Diagnostics:      true,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		Policy:           PolicyAuto,
		Window: WindowConfig{
			Title:  "Vulkan Course",
			Width:  1280,
			Height: 720,
		},
	}
}

type fileConfig struct {
	Application *applicationBlock `hcl:"application,block"`
	Diagnostics *diagnosticsBlock `hcl:"diagnostics,block"`
	Device      *deviceBlock      `hcl:"device,block"`
	Window      *windowBlock      `hcl:"window,block"`
}

type applicationBlock struct {
	Name          *string `hcl:"name,optional"`
	Version       *string `hcl:"version,optional"`
	Engine        *string `hcl:"engine,optional"`
	EngineVersion *string `hcl:"engine_version,optional"`
	APIVersion    *string `hcl:"api_version,optional"`
}

type diagnosticsBlock struct {
	Enabled *bool    `hcl:"enabled,optional"`
	Layers  []string `hcl:"layers,optional"`
}

type deviceBlock struct {
	Policy  *string  `hcl:"policy,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

type windowBlock struct {
	Title  *string `hcl:"title,optional"`
	Width  *int    `hcl:"width,optional"`
	Height *int    `hcl:"height,optional"`
}

// LoadConfig reads an HCL configuration file. Settings the file leaves out
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, errors.Mark(errors.Wrapf(diags, "parse %s", path), ErrInvalidConfig)
	}
	return decodeConfig(file)
}

// ParseConfig is LoadConfig for in-memory sources.
func ParseConfig(src []byte, filename string) (Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, errors.Mark(errors.Wrapf(diags, "parse %s", filename), ErrInvalidConfig)
	}
	return decodeConfig(file)
}

func decodeConfig(file *hcl.File) (Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return Config{}, errors.Mark(errors.Wrap(diags, "decode config"), ErrInvalidConfig)
	}

	cfg := DefaultConfig()
	var err error

	if a := fc.Application; a != nil {
		if a.Name != nil {
			cfg.AppName = *a.Name
		}
		if a.Engine != nil {
			cfg.EngineName = *a.Engine
		}
		if cfg.AppVersion, err = versionOr(a.Version, cfg.AppVersion); err != nil {
			return Config{}, err
		}
		if cfg.EngineVersion, err = versionOr(a.EngineVersion, cfg.EngineVersion); err != nil {
			return Config{}, err
		}
		if cfg.APIVersion, err = versionOr(a.APIVersion, cfg.APIVersion); err != nil {
			return Config{}, err
		}
	}

	if d := fc.Diagnostics; d != nil {
		if d.Enabled != nil {
			cfg.Diagnostics = *d.Enabled
		}
		if d.Layers != nil {
			cfg.ValidationLayers = d.Layers
		}
	}

	if d := fc.Device; d != nil {
		if d.Policy != nil {
			if cfg.Policy, err = ParsePolicy(*d.Policy); err != nil {
				return Config{}, err
			}
		}
		cfg.ExcludeDevices = d.Exclude
	}

	if w := fc.Window; w != nil {
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
		if w.Width != nil {
			cfg.Window.Width = *w.Width
		}
		if w.Height != nil {
			cfg.Window.Height = *w.Height
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the values a file could get wrong.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.APIVersion.Major < 1 {
		return errors.Wrapf(ErrInvalidConfig, "api version %s is below 1.0", c.APIVersion)
	}
	for _, l := range c.ValidationLayers {
		if strings.TrimSpace(l) == "" {
			return errors.Wrap(ErrInvalidConfig, "empty validation layer name")
		}
	}
	return nil
}

func versionOr(s *string, def Version) (Version, error) {
	if s == nil {
		return def, nil
	}
	return ParseVersion(*s)
}

// ParseVersion parses "major[.minor[.patch]]". Pre-release and build
// metadata are rejected; minor and patch must fit the packed 10 and 12 bit fields.
func ParseVersion(s string) (Version, error) {
	v, err := version.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, errors.Mark(errors.Wrapf(err, "malformed version %q", s), ErrInvalidConfig)
	}
	segments := v.Segments()
	if v.Prerelease() != "" || v.Metadata() != "" || len(segments) > 3 {
		return Version{}, errors.Wrapf(ErrInvalidConfig, "malformed version %q", s)
	}
	if segments[1] > 0x3ff || segments[2] > 0xfff {
		return Version{}, errors.Wrapf(ErrInvalidConfig, "version %q does not fit major.minor.patch packing", s)
	}
	return Version{Major: segments[0], Minor: segments[1], Patch: segments[2]}, nil
}
