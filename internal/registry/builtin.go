package registry

// Builtin returns a new Registry seeded with the shipped training modules.
func Builtin() *Registry {
	return New(BuiltinModules()...)
}

// BuiltinModules returns the shipped module descriptors in dashboard order.
func BuiltinModules() []Module {
	return []Module{
		{
			ID:               "3zone",
			Title:            "3Zone Deep Clean Assessment",
			Description:      "Hospital cleaning protocols and infection control procedures",
			Category:         CategoryFundamentals,
			EstimatedMinutes: 15,
			QuestionCount:    20,
			PassingScore:     DefaultPassingScore,
			Route:            "/3zone",
			Topics:           []string{"Infection Control", "Safety Protocols", "Best Practices"},
			Icon:             "🧽",
			Color:            "#2563EB",
		},
		{
			ID:               "noradrenaline",
			Title:            "Noradrenaline Training",
			Description:      "Critical medication administration and safety protocols",
			Category:         CategoryCriticalCare,
			EstimatedMinutes: 20,
			QuestionCount:    6,
			PassingScore:     DefaultPassingScore,
			Route:            "/noradrenaline",
			Topics:           []string{"Dosage Calculations", "Safety Protocols", "Administration Routes"},
			Icon:             "💉",
			Color:            "#9333EA",
		},
		{
			ID:               "sepsis",
			Title:            "Sepsis Guidelines 2024",
			Description:      "Latest sepsis management protocols and emergency procedures",
			Category:         CategoryEmergency,
			EstimatedMinutes: 25,
			QuestionCount:    8,
			PassingScore:     DefaultPassingScore,
			Route:            "/sepsis",
			Topics:           []string{"Fluid Resuscitation", "Antibiotic Protocols", "WHO Guidelines"},
			Icon:             "🚨",
			Color:            "#DC2626",
		},
	}
}
