package filetail

import "github.com/bft-labs/gelfship/pkg/gelfship"

// WithFileTail returns a gelfship Option that follows a file.
// It panics if cfg is invalid; use New and gelfship.WithPlugin to handle
// the error instead.
//
// Usage:
//
//	s, err := gelfship.New(cfg,
//	    filetail.WithFileTail(filetail.Config{
//	        Path:  "/var/log/app.log",
//	        Level: "notice",
//	    }),
//	)
func WithFileTail(cfg Config) gelfship.Option {
	plugin, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return gelfship.WithPlugin(plugin)
}
