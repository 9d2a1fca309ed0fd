package main

import "github.com/udisondev/vgcspread/internal/damage"

// damageOutput adds the readable summary lines to a damage result.
type damageOutput struct {
	damage.Result
	Summary  string `json:"summary"`
	KOChance string `json:"ko_chance"`
}
