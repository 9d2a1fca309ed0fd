package damage

import (
	"testing"

	"github.com/udisondev/vgcspread/internal/model"
)

// BenchmarkCalculate - одна атака без модификаторов.
func BenchmarkCalculate(b *testing.B) {
	att := physicalAttacker()
	def := defender(model.TypeWater)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = Calculate(att, def, fightingHit, Modifiers{})
	}
}

// BenchmarkCalculate_FullField - все стадии модификаторов разом.
func BenchmarkCalculate_FullField(b *testing.B) {
	att := physicalAttacker()
	def := defender(model.TypeNormal)
	mods := Modifiers{
		MultipleTargets:    true,
		AttackerItem:       model.LifeOrb,
		AttackerTera:       model.TypeFighting,
		AttackerTeraActive: true,
		Reflect:            true,
		HelpingHand:        true,
		SwordOfRuin:        true,
		DefenderAbility:    model.Multiscale,
		Weather:            Sand,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = Calculate(att, def, spreadHit, mods)
	}
}
