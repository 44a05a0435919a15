package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	scenefiles "github.com/banshee-data/coverage.report/config"
	"github.com/banshee-data/coverage.report/internal/coverage"
	"github.com/banshee-data/coverage.report/internal/fsutil"
)

// DefaultConfigPath is the path to the canonical scene defaults file. The
// same file is embedded in the binary and backs DefaultSceneConfig.
const DefaultConfigPath = "config/scene.defaults.json"

// Fallbacks for scene files that omit the scan parameters.
const (
	defaultResolution = 0.3
	defaultSize       = 40.0
	maxFileSize       = 1 * 1024 * 1024
)

// CameraConfig describes one camera in a scene file.
type CameraConfig struct {
	Name                 string    `json:"name,omitempty"`
	X                    float64   `json:"x"`
	Y                    float64   `json:"y"`
	OrientationDegrees   float64   `json:"orientation_degrees"`
	FOVDegrees           float64   `json:"fov_degrees"`
	Range                float64   `json:"range"`
	ResolutionHorizontal float64   `json:"resolution_horizontal,omitempty"`
	ColorRGBA            []float64 `json:"color_rgba"`
}

// SceneConfig is the root of a scene file: the scan parameters and the
// camera list. Scan fields omitted from the file fall back to defaults.
type SceneConfig struct {
	Resolution *float64       `json:"resolution,omitempty"`
	Size       *float64       `json:"size,omitempty"`
	Cameras    []CameraConfig `json:"cameras,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }

// DefaultSceneConfig parses the embedded copy of DefaultConfigPath. Each
// call returns a fresh config that the caller may modify.
func DefaultSceneConfig() *SceneConfig {
	cfg, err := parseSceneConfig(scenefiles.SceneDefaults)
	if err != nil {
		panic("embedded " + DefaultConfigPath + ": " + err.Error())
	}
	return cfg
}

// LoadSceneConfig loads a scene from a JSON file on disk.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	return LoadSceneConfigFS(fsutil.OSFileSystem{}, path)
}

// LoadSceneConfigFS loads a scene through fsys. The path must have a .json
// extension and the file must be under 1MB. Only the file's shape is checked
// here; call Validate to enforce camera invariants.
func LoadSceneConfigFS(fsys fsutil.FileSystem, path string) (*SceneConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return parseSceneConfig(data)
}

func parseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := &SceneConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	for i, c := range cfg.Cameras {
		if len(c.ColorRGBA) != 4 {
			return nil, fmt.Errorf("camera %d: color_rgba must have 4 channels, got %d", i, len(c.ColorRGBA))
		}
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents. Panics if the file cannot be loaded; intended
// for test setup.
func MustLoadDefaultConfig() *SceneConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadSceneConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks the scan parameters and every camera against the model
// invariants. The grid may not exceed coverage.MaxAxisPoints per axis, and
// each camera needs fov in (0, 360], range > 0 and colour channels in [0, 1].
func (c *SceneConfig) Validate() error {
	if c.Resolution != nil && !(*c.Resolution > 0) {
		return fmt.Errorf("resolution must be positive, got %v", *c.Resolution)
	}
	if c.Size != nil && !(*c.Size > 0) {
		return fmt.Errorf("size must be positive, got %v", *c.Size)
	}
	if _, err := coverage.AxisLen(c.GetSize(), c.GetResolution()); err != nil {
		return fmt.Errorf("scan grid too large or degenerate: %w", err)
	}
	if len(c.Cameras) == 0 {
		return fmt.Errorf("scene has no cameras")
	}

	for i, cam := range c.Cameras {
		label := fmt.Sprintf("camera %d", i)
		if cam.Name != "" {
			label = fmt.Sprintf("camera %d (%s)", i, cam.Name)
		}
		if !(cam.FOVDegrees > 0 && cam.FOVDegrees <= 360) {
			return fmt.Errorf("%s: fov_degrees must be in (0, 360], got %v", label, cam.FOVDegrees)
		}
		if !(cam.Range > 0) {
			return fmt.Errorf("%s: range must be positive, got %v", label, cam.Range)
		}
		if len(cam.ColorRGBA) != 4 {
			return fmt.Errorf("%s: color_rgba must have 4 channels, got %d", label, len(cam.ColorRGBA))
		}
		if !toRGBA(cam.ColorRGBA).Valid() {
			return fmt.Errorf("%s: color_rgba channels must be in [0, 1], got %v", label, cam.ColorRGBA)
		}
	}
	return nil
}

// SetScan overrides the scan parameters. Non-positive values are ignored.
func (c *SceneConfig) SetScan(resolution, size float64) {
	if resolution > 0 {
		c.Resolution = ptrFloat64(resolution)
	}
	if size > 0 {
		c.Size = ptrFloat64(size)
	}
}

// GetResolution returns the grid spacing or the default.
func (c *SceneConfig) GetResolution() float64 {
	if c.Resolution == nil {
		return defaultResolution
	}
	return *c.Resolution
}

// GetSize returns the half-width of the sampled square or the default.
func (c *SceneConfig) GetSize() float64 {
	if c.Size == nil {
		return defaultSize
	}
	return *c.Size
}

// GetCameras converts the camera entries into coverage cameras. Missing
// colour channels read as zero.
func (c *SceneConfig) GetCameras() []coverage.Camera {
	cams := make([]coverage.Camera, len(c.Cameras))
	for i, cc := range c.Cameras {
		cams[i] = coverage.Camera{
			Name:                 cc.Name,
			X:                    cc.X,
			Y:                    cc.Y,
			Orientation:          cc.OrientationDegrees,
			FOV:                  cc.FOVDegrees,
			Range:                cc.Range,
			ResolutionHorizontal: cc.ResolutionHorizontal,
			Color:                toRGBA(cc.ColorRGBA),
		}
	}
	return cams
}

func toRGBA(ch []float64) coverage.RGBA {
	var v [4]float64
	copy(v[:], ch)
	return coverage.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
}
