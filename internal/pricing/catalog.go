package pricing

// Catalog is the full hand-authored content for one proposal variant. It is
// the single source every renderer reads; nothing downstream re-authors a
// figure.
type Catalog struct {
	Variant  Variant
	Title    string
	Client   string
	Location string

	Synthesis []string
	Sections  []Section

	// FeesExclTax are the project-management fees, taxed at the full rate.
	FeesExclTax Cents

	// CEEPremium is the fixed energy-efficiency subsidy credited against the
	// grand total (stored positive, always subtracted).
	CEEPremium Cents

	// ResaleEstimate is the post-works property value used by the upside
	// section.
	ResaleEstimate Cents

	Inclusions []string
	Exclusions []string
	Studies    []string
	Insurance  []string

	Schedule      []SchedulePhase
	TotalDuration string

	Guarantees []string
}

const (
	clientName   = "SCI Les Tilleuls"
	siteLocation = "14 rue des Carmes, 45000 Orléans"
)

// ceePremium is identical for both variants: the subsidy attaches to the
// energy-improvement scope, which both options carry in full.
const ceePremium = Cents(2_500_00)

// fixedSections are the cost categories priced identically in both variants.
// Energy-band figures are authored in even euros so the 5.5% VAT lands on a
// whole cent and per-section rounding agrees with per-band rounding.
func fixedSections() []Section {
	return []Section{
		{
			Title: "Gros œuvre / Maçonnerie",
			Band:  BandRenovation,
			Items: []Item{
				{Label: "Démolition des cloisons existantes", AmountExclTax: 8_400_00},
				{Label: "Ouvertures dans murs porteurs", AmountExclTax: 12_600_00},
				{Label: "Reprise des planchers", AmountExclTax: 9_800_00},
			},
		},
		{
			Title: "Couverture / Charpente",
			Band:  BandRenovation,
			Items: []Item{
				{Label: "Révision complète de la couverture", AmountExclTax: 7_200_00},
				{Label: "Traitement de la charpente", AmountExclTax: 3_400_00},
			},
		},
		{
			Title: "Plâtrerie / Peinture",
			Band:  BandRenovation,
			Items: []Item{
				{Label: "Cloisons et doublages", AmountExclTax: 16_500_00},
				{Label: "Peintures et finitions", AmountExclTax: 11_200_00},
			},
		},
		{
			Title: "Isolation thermique",
			Band:  BandEnergy,
			Items: []Item{
				{Label: "Isolation des combles", AmountExclTax: 9_600_00},
				{Label: "Isolation des murs périphériques", AmountExclTax: 14_200_00},
			},
		},
		{
			Title: "Menuiseries extérieures",
			Band:  BandEnergy,
			Items: []Item{
				{Label: "Fenêtres double vitrage", AmountExclTax: 18_400_00},
				{Label: "Porte d'entrée isolante", AmountExclTax: 3_200_00},
			},
		},
		{
			Title: "Ventilation",
			Band:  BandEnergy,
			Items: []Item{
				{Label: "VMC double flux", AmountExclTax: 6_800_00},
			},
		},
	}
}

// ForVariant returns the catalog for one proposal option. Variant-specific
// figures cover the six variable cost categories, the fees, and the resale
// estimate; everything else is shared.
func ForVariant(v Variant) Catalog {
	c := Catalog{
		Variant:    v,
		Title:      "Proposition commerciale — Rénovation complète",
		Client:     clientName,
		Location:   siteLocation,
		CEEPremium: ceePremium,
		Inclusions: []string{
			"Maîtrise d'œuvre complète (conception, consultation des entreprises, suivi de chantier)",
			"Dépôt et suivi des autorisations d'urbanisme",
			"Réunions de chantier hebdomadaires avec compte rendu",
			"Assistance à la réception des travaux et suivi des levées de réserves",
		},
		Exclusions: []string{
			"Mobilier et électroménager non intégré",
			"Aménagements extérieurs et espaces verts",
			"Raccordements aux réseaux au-delà de la limite de propriété",
		},
		Studies: []string{
			"Diagnostic structure par bureau d'études béton",
			"Étude thermique réglementaire",
			"Diagnostics amiante et plomb avant travaux",
		},
		Insurance: []string{
			"Assurance dommages-ouvrage (à souscrire par le maître d'ouvrage)",
			"Garanties décennales des entreprises (attestations collectées par nos soins)",
		},
		Schedule: []SchedulePhase{
			{Label: "Études de conception et dépôt des autorisations", Duration: "2 mois"},
			{Label: "Instruction des autorisations d'urbanisme", Duration: "3 mois"},
			{Label: "Consultation des entreprises", Duration: "1 mois"},
			{Label: "Travaux", Duration: "8 mois"},
			{Label: "Réception et levée des réserves", Duration: "1 mois"},
		},
		TotalDuration: "15 mois",
		Guarantees: []string{
			"Garantie de parfait achèvement (1 an)",
			"Garantie biennale de bon fonctionnement (2 ans)",
			"Garantie décennale (10 ans)",
		},
	}

	c.Sections = append(c.Sections, fixedSections()...)

	switch v {
	case VariantColiving:
		c.FeesExclTax = 21_500_00
		c.ResaleEstimate = 520_000_00
		c.Synthesis = []string{
			"Transformation de la maison en espace de coliving de 6 chambres avec services partagés.",
			"Création d'espaces communs généreux : grande cuisine, double séjour, buanderie.",
			"Chaque chambre dispose de sa salle d'eau privative.",
		}
		c.Sections = append(c.Sections,
			Section{
				Title: "Chauffage / Pompe à chaleur",
				Band:  BandEnergy,
				Items: []Item{
					{Label: "Pompe à chaleur air/eau centralisée", AmountExclTax: 16_400_00},
				},
			},
			Section{
				Title: "Électricité",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Réfection complète, tableaux et distribution 6 chambres", AmountExclTax: 24_500_00},
				},
			},
			Section{
				Title: "Plomberie",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Alimentation et évacuations, 5 salles d'eau", AmountExclTax: 18_700_00},
				},
			},
			Section{
				Title: "Menuiseries intérieures",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Portes isophoniques et placards des chambres", AmountExclTax: 9_300_00},
				},
			},
			Section{
				Title: "Cuisine",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Grande cuisine partagée équipée", AmountExclTax: 12_400_00},
				},
			},
			Section{
				Title: "Sanitaires",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Équipement des 5 salles d'eau privatives", AmountExclTax: 11_600_00},
				},
			},
		)

	case VariantLogements:
		c.FeesExclTax = 24_000_00
		c.ResaleEstimate = 565_000_00
		c.Synthesis = []string{
			"Division de la maison en 3 logements indépendants (2 T3 et 1 T2).",
			"Création d'accès séparés et individualisation complète des réseaux.",
			"Chaque logement dispose de sa cuisine et de sa salle de bain.",
		}
		c.Sections = append(c.Sections,
			Section{
				Title: "Chauffage / Pompe à chaleur",
				Band:  BandEnergy,
				Items: []Item{
					{Label: "3 pompes à chaleur individuelles", AmountExclTax: 21_600_00},
				},
			},
			Section{
				Title: "Électricité",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Réfection complète, 3 tableaux et compteurs individuels", AmountExclTax: 31_200_00},
				},
			},
			Section{
				Title: "Plomberie",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Individualisation des réseaux, 3 logements", AmountExclTax: 24_900_00},
				},
			},
			Section{
				Title: "Menuiseries intérieures",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "Portes palières et menuiseries des 3 logements", AmountExclTax: 12_800_00},
				},
			},
			Section{
				Title: "Cuisine",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "3 cuisines équipées", AmountExclTax: 19_500_00},
				},
			},
			Section{
				Title: "Sanitaires",
				Band:  BandEquipment,
				Items: []Item{
					{Label: "3 salles de bain complètes", AmountExclTax: 9_800_00},
				},
			},
		)
	}

	return c
}
