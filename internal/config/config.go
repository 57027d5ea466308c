// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Model    ModelConfig    `yaml:"model"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Material MaterialConfig `yaml:"material"`
	Motion   MotionConfig   `yaml:"motion"`
	Ground   GroundConfig   `yaml:"ground"`
	Segment  SegmentConfig  `yaml:"segment"`
	Startup  StartupConfig  `yaml:"startup"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ModelConfig holds mesh loading settings.
type ModelConfig struct {
	Path string `yaml:"path"` // .obj, .gltf or .glb file
	// Largest dimension after centering; zero disables rescaling.
	FitSize float32 `yaml:"fit_size"`
}

// CameraConfig holds projection and orbit-control settings.
type CameraConfig struct {
	FOVDegrees  float32 `yaml:"fov_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Distance    float32 `yaml:"distance"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	// Pitch is clamped to +/- this many degrees to avoid gimbal flip.
	PitchLimitDegrees float32 `yaml:"pitch_limit_degrees"`
	OrbitSpeed        float32 `yaml:"orbit_speed"` // yaw keys, deg/s
	PitchSpeed        float32 `yaml:"pitch_speed"` // pitch keys, deg/s
	ZoomSpeed         float32 `yaml:"zoom_speed"`  // units/s
	MouseSensitivity  float32 `yaml:"mouse_sensitivity"`
	TurboMultiplier   float32 `yaml:"turbo_multiplier"`
}

// LightConfig holds the single light source settings.
type LightConfig struct {
	Position [3]float32 `yaml:"position"`
	Ambient  [3]float32 `yaml:"ambient"`
	Diffuse  [3]float32 `yaml:"diffuse"`
	Specular [3]float32 `yaml:"specular"`

	// Optional light motion, composed on top of the base position.
	OrbitEnabled bool       `yaml:"orbit_enabled"`
	OrbitRadius  float32    `yaml:"orbit_radius"`
	OrbitSpeed   float32    `yaml:"orbit_speed"` // deg/s
	OrbitCenter  [3]float32 `yaml:"orbit_center"`
	BobEnabled   bool       `yaml:"bob_enabled"`
	BobAmplitude float32    `yaml:"bob_amplitude"`
	BobSpeed     float32    `yaml:"bob_speed"` // Hz
	BobBaseY     float32    `yaml:"bob_base_y"`
	PathEnabled  bool       `yaml:"path_enabled"`
	PathScale    float32    `yaml:"path_scale"`
	PathSpeed    float32    `yaml:"path_speed"`
	// The light never dips below this height so shadows stay defined.
	MinHeight float32 `yaml:"min_height"`
}

// MaterialConfig holds the base hull material. The saucer shades with
// it directly; raised hull sections carry their own finishes.
type MaterialConfig struct {
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// MotionConfig holds object motion-mode constants.
type MotionConfig struct {
	OrbitRadius      float32 `yaml:"orbit_radius"`
	OrbitSpeed       float32 `yaml:"orbit_speed"` // rad/s
	BobAmplitude     float32 `yaml:"bob_amplitude"`
	BobSpeed         float32 `yaml:"bob_speed"` // rad/s
	EightRadius      float32 `yaml:"eight_radius"`
	EightSpeed       float32 `yaml:"eight_speed"` // rad/s
	BaseHeight       float32 `yaml:"base_height"`
	SpinSpeedDegrees float32 `yaml:"spin_speed_degrees"` // auto-rotation about Y, deg/s
}

// GroundConfig holds ground plane and shadow settings.
type GroundConfig struct {
	Height      float32    `yaml:"height"`
	Size        float32    `yaml:"size"`
	Color       [3]float32 `yaml:"color"`
	ShadowColor [4]float32 `yaml:"shadow_color"`
}

// SegmentConfig holds the geometric thresholds used to classify mesh
// faces into hull regions. Values are in model space after fitting.
type SegmentConfig struct {
	BridgeMinY      float32 `yaml:"bridge_min_y"`
	BridgeMaxRadius float32 `yaml:"bridge_max_radius"`
	NacelleMinX     float32 `yaml:"nacelle_min_x"`
	NacelleMinY     float32 `yaml:"nacelle_min_y"`
	NacelleMaxY     float32 `yaml:"nacelle_max_y"`
	PylonMinX       float32 `yaml:"pylon_min_x"`
	PylonMaxX       float32 `yaml:"pylon_max_x"`
	PylonMinY       float32 `yaml:"pylon_min_y"`
	PylonMaxY       float32 `yaml:"pylon_max_y"`
	HullMinY        float32 `yaml:"hull_min_y"`
	HullMaxY        float32 `yaml:"hull_max_y"`
	HullMinZ        float32 `yaml:"hull_min_z"`
	HullMaxZ        float32 `yaml:"hull_max_z"`
	HullMaxX        float32 `yaml:"hull_max_x"`
}

// StartupConfig holds the initial toggle state. These are the documented
// defaults the interaction state machine starts from.
type StartupConfig struct {
	Lighting     bool   `yaml:"lighting"`
	Shadows      bool   `yaml:"shadows"`
	Ground       bool   `yaml:"ground"`
	RenderMode   string `yaml:"render_mode"`   // filled, wireframe, points
	MotionMode   string `yaml:"motion_mode"`   // orbital, bobbing, figure_eight, none
	ColoringMode string `yaml:"coloring_mode"` // solid, region, angle, mixed, animated
	ColorScheme  string `yaml:"color_scheme"`  // starfleet, battle, exploration
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Model: ModelConfig{
			Path:    "models/enterprise.obj",
			FitSize: 4.0,
		},
		Camera: CameraConfig{
			FOVDegrees:        45.0,
			Near:              0.1,
			Far:               100.0,
			Distance:          8.0,
			MinDistance:       2.0,
			MaxDistance:       50.0,
			PitchLimitDegrees: 89.0,
			OrbitSpeed:        100.0,
			PitchSpeed:        70.0,
			ZoomSpeed:         3.5,
			MouseSensitivity:  0.005,
			TurboMultiplier:   3.0,
		},
		Light: LightConfig{
			Position:     [3]float32{5, 5, 5},
			Ambient:      [3]float32{0.2, 0.2, 0.3},
			Diffuse:      [3]float32{0.8, 0.9, 1.0},
			Specular:     [3]float32{1.0, 1.0, 1.0},
			OrbitRadius:  6.0,
			OrbitSpeed:   45.0,
			OrbitCenter:  [3]float32{0, 3, 0},
			BobAmplitude: 1.5,
			BobSpeed:     2.0,
			BobBaseY:     5.0,
			PathScale:    4.0,
			PathSpeed:    1.0,
			MinHeight:    0.5,
		},
		Material: MaterialConfig{
			Ambient:   [3]float32{0.3, 0.3, 0.4},
			Diffuse:   [3]float32{0.6, 0.7, 0.8},
			Specular:  [3]float32{0.9, 0.9, 0.9},
			Shininess: 32.0,
		},
		Motion: MotionConfig{
			OrbitRadius:      3.0,
			OrbitSpeed:       0.5,
			BobAmplitude:     1.0,
			BobSpeed:         3.14159265,
			EightRadius:      3.0,
			EightSpeed:       0.5,
			BaseHeight:       0.0,
			SpinSpeedDegrees: 30.0,
		},
		Ground: GroundConfig{
			Height:      -3.0,
			Size:        30.0,
			Color:       [3]float32{0.3, 0.4, 0.3},
			ShadowColor: [4]float32{0.1, 0.1, 0.1, 0.8},
		},
		Segment: SegmentConfig{
			BridgeMinY:      1.0,
			BridgeMaxRadius: 0.8,
			NacelleMinX:     2.0,
			NacelleMinY:     -1.0,
			NacelleMaxY:     1.5,
			PylonMinX:       0.8,
			PylonMaxX:       2.0,
			PylonMinY:       -0.5,
			PylonMaxY:       0.5,
			HullMinY:        -2.0,
			HullMaxY:        0.5,
			HullMinZ:        -1.0,
			HullMaxZ:        2.0,
			HullMaxX:        1.5,
		},
		Startup: StartupConfig{
			Lighting:     true,
			Shadows:      true,
			Ground:       true,
			RenderMode:   "filled",
			MotionMode:   "orbital",
			ColoringMode: "region",
			ColorScheme:  "starfleet",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
