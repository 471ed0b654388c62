package config_test

import (
	"fmt"

	"github.com/matzehuels/orbital/pkg/config"
)

func ExampleParse() {
	cfg, err := config.Parse([]byte("[sampling]\nresolution = 48\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.Sampling.Resolution, cfg.Server.Addr)
	// Output: 48 :8080
}
