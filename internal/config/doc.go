// Package config loads vtree configuration.
//
// Configuration lives in vtree.json or vtree.toml in the working
// directory (or a parent). Missing fields keep their defaults.
//
// # Configuration File Structure
//
//	{
//	  "scanRatio": 0.5,
//	  "logLevel": "info",
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vtree"
//	  },
//	  "server": {
//	    "addr": ":7331",
//	    "maxMessageSize": 1048576,
//	    "writeTimeout": "10s"
//	  },
//	  "tracing": {
//	    "tracerName": "vtree"
//	  }
//	}
//
// The TOML form uses the same keys:
//
//	scanRatio = 0.25
//	logLevel = "debug"
//
//	[server]
//	addr = "127.0.0.1:8080"
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
