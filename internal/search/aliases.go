package search

const (
	DefaultAliasWeight     = 1.5
	DefaultAliasExactBonus = 0.5
	DefaultNameWeight      = 0.8
)

// AliasRule expands a trigger term found in a query into alternative spellings
// to look for in documents.
type AliasRule struct {
	Trigger    string   `yaml:"trigger"`
	Aliases    []string `yaml:"aliases"`
	Weight     float64  `yaml:"weight,omitempty"`      // Per alias found in content
	ExactBonus float64  `yaml:"exact_bonus,omitempty"` // Extra when the alias is the trigger itself
}

// AliasTable is the curated vocabulary used for role and name queries.
type AliasTable struct {
	Rules []AliasRule `yaml:"rules"`
	// Names are boosted when the query asks who someone is.
	Names      []string `yaml:"names"`
	NameWeight float64  `yaml:"name_weight,omitempty"`
	// WhoTriggers mark a query as asking for a person.
	WhoTriggers []string `yaml:"who_triggers"`
}

// DefaultAliasTable returns the built-in role and name vocabulary.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		Rules: []AliasRule{
			{Trigger: "代表", Aliases: []string{"代表取締役", "代表", "ceo", "社長", "創業"}},
			{Trigger: "取締役", Aliases: []string{"代表取締役", "取締役", "director"}},
			{Trigger: "cto", Aliases: []string{"cto", "技術責任者", "最高技術責任者"}},
			{Trigger: "ceo", Aliases: []string{"ceo", "代表取締役", "社長"}},
			{Trigger: "田野", Aliases: []string{"田野", "tano", "toru", "田野 徹", "田野徹"}},
			{Trigger: "ujwal", Aliases: []string{"ujwal", "kumar", "ujwal kumar"}},
			{Trigger: "加藤", Aliases: []string{"加藤", "kato", "加藤 誠", "加藤誠"}},
			{Trigger: "中村", Aliases: []string{"中村", "nakamura", "中村昭彦"}},
			{Trigger: "アドバイザー", Aliases: []string{"アドバイザー", "advisor", "顧問"}},
			{Trigger: "顧問", Aliases: []string{"顧問", "アドバイザー", "advisor", "技術顧問"}},
			{Trigger: "社長", Aliases: []string{"社長", "ceo", "代表取締役", "代表"}},
			{Trigger: "創業", Aliases: []string{"創業", "founder", "20歳で創業", "立ち上げ"}},
		},
		Names:       []string{"田野", "ujwal", "加藤", "中村"},
		WhoTriggers: []string{"誰", "だれ"},
	}
}

// normalized returns a copy with folded terms and default weights filled in.
func (t AliasTable) normalized() AliasTable {
	out := AliasTable{
		NameWeight: t.NameWeight,
	}
	if out.NameWeight <= 0 {
		out.NameWeight = DefaultNameWeight
	}
	for _, r := range t.Rules {
		if r.Trigger == "" {
			continue
		}
		nr := AliasRule{
			Trigger:    fold(r.Trigger),
			Weight:     r.Weight,
			ExactBonus: r.ExactBonus,
		}
		if nr.Weight <= 0 {
			nr.Weight = DefaultAliasWeight
		}
		if nr.ExactBonus <= 0 {
			nr.ExactBonus = DefaultAliasExactBonus
		}
		for _, a := range r.Aliases {
			if a != "" {
				nr.Aliases = append(nr.Aliases, fold(a))
			}
		}
		out.Rules = append(out.Rules, nr)
	}
	for _, n := range t.Names {
		if n != "" {
			out.Names = append(out.Names, fold(n))
		}
	}
	for _, w := range t.WhoTriggers {
		if w != "" {
			out.WhoTriggers = append(out.WhoTriggers, fold(w))
		}
	}
	return out
}
