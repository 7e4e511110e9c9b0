package report

import (
	"github.com/benaskins/checkgpu/internal/gpu"
)

// Render writes the human-readable report for res to log.
func Render(res Result, log *Log) {
	log.Println("")
	log.Println("Checking kexts:")
	log.Println("")
	renderKexts(res.Kexts, log)
	log.Println("")

	log.Printf("Current OS Version: %s", orDefault(res.OSVersion, "Unknown!"))
	log.Println("")
	log.Printf("Current boot-args: %s", orDefault(res.BootArgs, "None set!"))
	log.Println("")

	log.Println("Locating GPU devices...")
	log.Println("")
	log.Println("Iterating for devices with matching class-code...")
	log.Printf(" - Located %d", len(res.GPUs))
	if len(res.GPUs) == 0 {
		log.Println(" - None found!")
		log.Println("")
		return
	}
	log.Println("")
	log.Println("Iterating GPU devices:")
	log.Println("")
	for _, g := range res.GPUs {
		renderGPU(g, log)
	}
}

func renderKexts(k Kexts, log *Log) {
	log.Println("Locating Lilu...")
	if !k.Lilu.Loaded {
		log.Println(" - Not loaded! AppleALC and WhateverGreen need this!")
		return
	}
	log.Printf(" - Found v%s", k.Lilu.Version)
	log.Println("Checking for Lilu plugins...")

	log.Println(" - Locating AppleALC...")
	if k.AppleALC.Loaded {
		log.Printf(" --> Found v%s", k.AppleALC.Version)
	} else {
		log.Println(" --> Not loaded! Onboard and HDMI/DP audio may not work!")
	}

	log.Println(" - Locating WhateverGreen...")
	if k.WhateverGreen.Loaded {
		log.Printf(" --> Found v%s", k.WhateverGreen.Version)
	} else {
		log.Println(" --> Not loaded! GFX and audio may not work!")
	}
}

func renderGPU(g gpu.Info, log *Log) {
	log.Printf(" - %s - %s", g.Name, orDefault(g.Path, "Could Not Resolve Device Path"))
	for _, p := range g.Properties {
		log.Printf(" --> %s: %s", p.Name, p.Value)
	}
	log.Println("")
	log.Println("Connectors:")
	log.Println("")
	if len(g.Connectors) == 0 {
		log.Println(" - None found!")
	}
	for _, c := range g.Connectors {
		log.Println(c)
	}
	log.Println("")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
