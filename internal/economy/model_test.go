package economy

import (
	"math"
	"testing"

	"github.com/vovakirdan/atmosim/internal/config"
)

func TestZeroDeficitZeroPowerLawCosts(t *testing.T) {
	m := NewModel(config.DefaultEconomy([]string{"aluminum"}))
	for _, c := range []float64{280, 281, 400} {
		l := m.Compute(Inputs{Concentration: c, PowerLaw: 4, EM: 30, Geo: 10, MeanTemperature: 15})
		if l.OzoneDamage != 0 || l.Agriculture != 0 || l.Health != 0 {
			t.Errorf("c=%v: power-law costs = %v %v %v, expected 0", c, l.OzoneDamage, l.Agriculture, l.Health)
		}
	}
}

func TestPowerLawCategories(t *testing.T) {
	m := NewModel(config.DefaultEconomy(nil))
	l := m.Compute(Inputs{Concentration: 250, PowerLaw: 2, MeanTemperature: 15})

	deficit := 30.0
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"ozone", l.OzoneDamage, 0.5 * math.Pow(deficit, 2) / 10},
		{"agriculture", l.Agriculture, 0.8 * math.Pow(deficit, 2.2) / 8},
		{"health", l.Health, 0.6 * math.Pow(deficit, 2.1) / 9},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
	if l.Climate != 0 || l.Navigation != 0 || l.Forcing != 0 || l.Systemic != 0 {
		t.Errorf("unexpected non-power-law costs: %+v", l)
	}
}

func TestExponentFloor(t *testing.T) {
	m := NewModel(config.DefaultEconomy(nil))
	low := m.Compute(Inputs{Concentration: 260, PowerLaw: 0.5, MeanTemperature: 15})
	floor := m.Compute(Inputs{Concentration: 260, PowerLaw: 1.5, MeanTemperature: 15})
	if low != floor {
		t.Errorf("exponent below 1.5 not floored: %+v vs %+v", low, floor)
	}
}

func TestCouplingMultiplierSkipsSystemic(t *testing.T) {
	m := NewModel(config.DefaultEconomy(nil))
	base := m.Compute(Inputs{Concentration: 250, PowerLaw: 2, CascadeRisk: 0.4, MeanTemperature: 15})
	coupled := m.Compute(Inputs{Concentration: 250, PowerLaw: 2, CascadeRisk: 0.4, MeanTemperature: 15, Geo: 30})

	if math.Abs(coupled.OzoneDamage-2*base.OzoneDamage) > 1e-9 {
		t.Errorf("OzoneDamage = %v, expected doubled %v", coupled.OzoneDamage, base.OzoneDamage)
	}
	if coupled.Systemic != base.Systemic || base.Systemic != 20 {
		t.Errorf("Systemic = %v / %v, expected 20 unscaled", base.Systemic, coupled.Systemic)
	}
}

func TestClimateDisruption(t *testing.T) {
	m := NewModel(config.DefaultEconomy(nil))
	l := m.Compute(Inputs{Concentration: 300, MeanTemperature: 12, Thermo: 10})
	want := 3*2 + 10*0.3
	if math.Abs(l.Climate-want) > 1e-12 {
		t.Errorf("Climate = %v, expected %v", l.Climate, want)
	}
}

func TestIonosphere(t *testing.T) {
	m := NewModel(config.DefaultEconomy([]string{"aluminum_oxide"}))

	if got := m.Ionosphere(0); got.Density != 0 || got.GPS != 0 || got.EMAmplifier != 1 {
		t.Errorf("Ionosphere(0) = %+v", got)
	}

	got := m.Ionosphere(500)
	amp := 1 + math.Pow(0.5, 1.3)*2
	if math.Abs(got.EMAmplifier-amp) > 1e-12 {
		t.Errorf("EMAmplifier = %v, expected %v", got.EMAmplifier, amp)
	}
	if math.Abs(got.GPS-0.4) > 1e-12 {
		t.Errorf("GPS = %v, expected 0.4", got.GPS)
	}
	if math.Abs(got.Comm-math.Min(1, 0.5*amp*0.3)) > 1e-12 {
		t.Errorf("Comm = %v", got.Comm)
	}

	saturated := m.Ionosphere(5000)
	if saturated.GPS != 1 || saturated.Comm != 1 {
		t.Errorf("Ionosphere(5000) = %+v, expected saturation", saturated)
	}
}

func TestNavigationAndForcing(t *testing.T) {
	m := NewModel(config.DefaultEconomy([]string{"aluminum_oxide"}))
	l := m.Compute(Inputs{Concentration: 300, MeanTemperature: 15, DebrisCount: 250, ScatteringArea: 1000})

	wantNav := 0.2*15 + math.Min(1, 0.25*(1+math.Pow(0.25, 1.3)*2)*0.3)*8
	if math.Abs(l.Navigation-wantNav) > 1e-9 {
		t.Errorf("Navigation = %v, expected %v", l.Navigation, wantNav)
	}
	if math.Abs(l.Forcing-1000*0.0002*20) > 1e-9 {
		t.Errorf("Forcing = %v, expected 4", l.Forcing)
	}
	if m.RadiativeForcing(1000) >= 0 {
		t.Error("default debris should have net cooling forcing")
	}

	disabled := NewModel(config.DefaultEconomy(nil)).Compute(Inputs{Concentration: 300, MeanTemperature: 15, DebrisCount: 250, ScatteringArea: 1000})
	if disabled.Navigation != 0 || disabled.Forcing != 0 {
		t.Errorf("no debris species should disable navigation and forcing: %+v", disabled)
	}
}

func TestTotalIsSumOfCategories(t *testing.T) {
	m := NewModel(config.DefaultEconomy([]string{"aluminum"}))
	l := m.Compute(Inputs{
		Concentration: 190, PowerLaw: 3, MeanTemperature: 18, EM: 12, Thermo: 4,
		Geo: 6, CascadeRisk: 0.7, DebrisCount: 40, ScatteringArea: 2,
	})
	sum := 0.0
	for _, c := range l.Categories() {
		if c.Value < 0 {
			t.Errorf("%s = %v, negative", c.Name, c.Value)
		}
		sum += c.Value
	}
	if math.Abs(sum-l.Total) > 1e-9*math.Max(1, l.Total) {
		t.Errorf("Total = %v, categories sum to %v", l.Total, sum)
	}
}
