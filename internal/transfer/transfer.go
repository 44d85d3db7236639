// Package transfer moves a household's catalog in and out as JSON: unit
// options, dish types, ingredients, menus, meal sets, task categories, task
// templates, recurring rules, and reward templates. Tasks, transactions,
// users, and plans never travel.
package transfer

// Document is the wire format. Section order is fixed and meaningful: import
// applies sections top to bottom so that later sections can resolve natural
// keys created by earlier ones.
type Document struct {
	UnitOptions     []UnitOptionEntry     `json:"unit_options"`
	DishTypes       []DishTypeEntry       `json:"dish_types"`
	Ingredients     []IngredientEntry     `json:"ingredients"`
	Menus           []MenuEntry           `json:"menus"`
	MealSets        []MealSetEntry        `json:"meal_sets"`
	TaskCategories  []TaskCategoryEntry   `json:"task_categories"`
	TaskTemplates   []TaskTemplateEntry   `json:"task_templates"`
	RecurringRules  []RecurringRuleEntry  `json:"recurring_rules"`
	RewardTemplates []RewardTemplateEntry `json:"reward_templates"`
}

type UnitOptionEntry struct {
	Value     string `json:"value"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

type DishTypeEntry struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type IngredientEntry struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type MenuIngredientEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type MenuEntry struct {
	Name        string                `json:"name"`
	DishType    string                `json:"dish_type"`
	Memo        string                `json:"memo"`
	Ingredients []MenuIngredientEntry `json:"ingredients"`
}

type MealSetRequirementEntry struct {
	DishType string `json:"dish_type"`
	Quantity int    `json:"quantity"`
}

type MealSetEntry struct {
	Name         string                    `json:"name"`
	Requirements []MealSetRequirementEntry `json:"requirements"`
}

type TaskCategoryEntry struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type TaskTemplateEntry struct {
	Title          string `json:"title"`
	Memo           string `json:"memo"`
	Category       string `json:"category"`
	ProposedPoints int    `json:"proposed_points"`
	Priority       int    `json:"priority"`
	Instructions   string `json:"instructions"`
}

// RecurringRuleEntry references its template by title. On import a rule whose
// title resolves to no template is skipped, not an error.
type RecurringRuleEntry struct {
	TemplateTitle   string `json:"template_title"`
	Frequency       string `json:"frequency"`
	NextRunDate     string `json:"next_run_date"`
	RelativeDueDays int    `json:"relative_due_days"`
	Active          bool   `json:"active"`
}

type RewardTemplateEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PointCost   int    `json:"point_cost"`
	Active      bool   `json:"active"`
}
