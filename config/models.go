package config

import "time"

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"  json:"server"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"     json:"log"`
	Toolkit ToolkitConfig `mapstructure:"toolkit" yaml:"toolkit" json:"toolkit"`
}

type ServerConfig struct {
	// Host to listen on. Empty means all interfaces.
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port int    `mapstructure:"port" yaml:"port" json:"port" jsonschema:"minimum=0,maximum=65535,default=7777"`
	// Workers is the size of the handler pool.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers" jsonschema:"minimum=1,default=10"`
	// QueueSize bounds the number of calls waiting for a worker. 0 means
	// the same as Workers.
	QueueSize       int           `mapstructure:"queue_size"        yaml:"queue_size"        json:"queue_size"        jsonschema:"minimum=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"  yaml:"shutdown_timeout"  json:"shutdown_timeout"`
	MaxRecvMsgSize  int           `mapstructure:"max_recv_msg_size" yaml:"max_recv_msg_size" json:"max_recv_msg_size" jsonschema:"minimum=1"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"  jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" json:"format" jsonschema:"enum=text,enum=json"`
}

type ToolkitConfig struct {
	// Binary labels every named-entity span "NE" instead of typing it.
	Binary bool `mapstructure:"binary" yaml:"binary" json:"binary"`
}
