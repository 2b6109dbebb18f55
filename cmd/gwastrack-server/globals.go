package main

import (
	"github.com/carbocation/gwastrack/figure"
	"github.com/carbocation/gwastrack/gwas"
)

type Global struct {
	log    gwas.Logger
	figure *figure.Figure

	Site       string
	ConfigPath string
}
