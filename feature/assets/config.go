package assets

// Config holds the pipeline settings.
type Config struct {
	// TexturePoolSize is the number of concurrent texture loads.
	TexturePoolSize int `mapstructure:"texture_pool_size" default:"3"`
	// GLTFPoolSize is the number of concurrent glTF loads.
	GLTFPoolSize int `mapstructure:"gltf_pool_size" default:"1"`
	// FBXPoolSize is the number of concurrent FBX loads, shared by models and skeleton animations.
	FBXPoolSize int `mapstructure:"fbx_pool_size" default:"3"`
	// AudioPoolSize is the number of concurrent audio loads.
	AudioPoolSize int `mapstructure:"audio_pool_size" default:"3"`
	// BaseDir is the directory relative asset URLs are resolved against.
	BaseDir string `mapstructure:"base_dir" default:"./assets"`
	// HTTPTimeoutSeconds bounds each http(s) download.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"30"`
}
