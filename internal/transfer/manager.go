package transfer

import (
	"fmt"
	"log/slog"

	"github.com/mkondo/kajiboard/internal/store"
)

// Manager wires the stores needed to export and import a household catalog.
type Manager struct {
	ingredients *store.IngredientStore
	menus       *store.MenuStore
	sets        *store.MealSetStore
	categories  *store.CategoryStore
	templates   *store.TemplateStore
	rules       *store.RecurringStore
	rewards     *store.RewardStore
	logger      *slog.Logger
}

func NewManager(
	ingredients *store.IngredientStore,
	menus *store.MenuStore,
	sets *store.MealSetStore,
	categories *store.CategoryStore,
	templates *store.TemplateStore,
	rules *store.RecurringStore,
	rewards *store.RewardStore,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		ingredients: ingredients,
		menus:       menus,
		sets:        sets,
		categories:  categories,
		templates:   templates,
		rules:       rules,
		rewards:     rewards,
		logger:      logger.With("component", "transfer"),
	}
}

// Export assembles the household's catalog document.
func (m *Manager) Export(householdID int64) (*Document, error) {
	doc := &Document{}

	units, err := m.ingredients.ListUnitOptions(householdID, false)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		doc.UnitOptions = append(doc.UnitOptions, UnitOptionEntry{
			Value: u.Value, SortOrder: u.SortOrder, Active: u.Active,
		})
	}

	dishTypes, err := m.sets.ListDishTypes(householdID)
	if err != nil {
		return nil, err
	}
	dishTypeNames := make(map[int64]string, len(dishTypes))
	for _, d := range dishTypes {
		dishTypeNames[d.ID] = d.Name
		doc.DishTypes = append(doc.DishTypes, DishTypeEntry{Name: d.Name, SortOrder: d.SortOrder})
	}

	ingredients, err := m.ingredients.List(householdID)
	if err != nil {
		return nil, err
	}
	for _, i := range ingredients {
		doc.Ingredients = append(doc.Ingredients, IngredientEntry{Name: i.Name, Unit: i.Unit})
	}

	menus, err := m.menus.List(householdID)
	if err != nil {
		return nil, err
	}
	for _, menu := range menus {
		entry := MenuEntry{Name: menu.Name, Memo: menu.Memo}
		if menu.DishTypeID != nil {
			entry.DishType = dishTypeNames[*menu.DishTypeID]
		}
		lines, err := m.menus.ListIngredients(menu.ID)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			entry.Ingredients = append(entry.Ingredients, MenuIngredientEntry{
				Name: line.Name, Quantity: line.Quantity, Unit: line.Unit,
			})
		}
		doc.Menus = append(doc.Menus, entry)
	}

	sets, err := m.sets.List(householdID)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		entry := MealSetEntry{Name: set.Name}
		reqs, err := m.sets.ListRequirements(set.ID)
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			entry.Requirements = append(entry.Requirements, MealSetRequirementEntry{
				DishType: req.DishTypeName, Quantity: req.Quantity,
			})
		}
		doc.MealSets = append(doc.MealSets, entry)
	}

	categories, err := m.categories.List(householdID)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		doc.TaskCategories = append(doc.TaskCategories, TaskCategoryEntry{Name: c.Name, SortOrder: c.SortOrder})
	}

	templates, err := m.templates.List(householdID)
	if err != nil {
		return nil, err
	}
	templateTitles := make(map[int64]string, len(templates))
	for _, tpl := range templates {
		templateTitles[tpl.ID] = tpl.Title
		doc.TaskTemplates = append(doc.TaskTemplates, TaskTemplateEntry{
			Title: tpl.Title, Memo: tpl.Memo, Category: tpl.Category,
			ProposedPoints: tpl.ProposedPoints, Priority: tpl.Priority,
			Instructions: tpl.Instructions,
		})
	}

	rules, err := m.rules.List(householdID)
	if err != nil {
		return nil, err
	}
	for _, rule := range rules {
		title, ok := templateTitles[rule.TaskTemplateID]
		if !ok {
			continue
		}
		doc.RecurringRules = append(doc.RecurringRules, RecurringRuleEntry{
			TemplateTitle: title, Frequency: rule.Frequency,
			NextRunDate: rule.NextRunDate, RelativeDueDays: rule.RelativeDueDays,
			Active: rule.Active,
		})
	}

	rewards, err := m.rewards.List(householdID, false)
	if err != nil {
		return nil, err
	}
	for _, r := range rewards {
		doc.RewardTemplates = append(doc.RewardTemplates, RewardTemplateEntry{
			Title: r.Title, Description: r.Description,
			PointCost: r.PointCost, Active: r.Active,
		})
	}

	return doc, nil
}

// ImportStats counts what an import touched.
type ImportStats struct {
	UnitOptions     int
	DishTypes       int
	Ingredients     int
	Menus           int
	MealSets        int
	TaskCategories  int
	TaskTemplates   int
	RecurringRules  int
	SkippedRules    int
	RewardTemplates int
}

// Import applies the document to the target household, upserting each entry
// by its natural key: existing rows are updated, missing rows inserted.
// Nothing is deleted.
func (m *Manager) Import(householdID int64, doc *Document) (*ImportStats, error) {
	stats := &ImportStats{}

	for _, u := range doc.UnitOptions {
		if err := m.ingredients.UpsertUnitOption(householdID, u.Value, u.SortOrder, u.Active); err != nil {
			return stats, err
		}
		stats.UnitOptions++
	}

	for _, d := range doc.DishTypes {
		if err := m.sets.UpsertDishType(householdID, d.Name, d.SortOrder); err != nil {
			return stats, err
		}
		stats.DishTypes++
	}

	for _, i := range doc.Ingredients {
		if _, err := m.ingredients.GetOrCreate(householdID, i.Name, i.Unit); err != nil {
			return stats, err
		}
		stats.Ingredients++
	}

	for _, entry := range doc.Menus {
		var dishTypeID *int64
		if entry.DishType != "" {
			dt, err := m.sets.GetDishTypeByName(householdID, entry.DishType)
			if err != nil {
				return stats, err
			}
			if dt != nil {
				dishTypeID = &dt.ID
			}
		}

		menu, err := m.menus.GetByName(householdID, entry.Name)
		if err != nil {
			return stats, err
		}
		if menu == nil {
			menu, err = m.menus.Create(householdID, entry.Name, dishTypeID, entry.Memo)
		} else {
			menu, err = m.menus.Update(householdID, menu.ID, entry.Name, dishTypeID, entry.Memo)
		}
		if err != nil {
			return stats, err
		}

		lines := make([]store.IngredientLine, 0, len(entry.Ingredients))
		for _, line := range entry.Ingredients {
			lines = append(lines, store.IngredientLine{
				Name: line.Name, Quantity: line.Quantity, Unit: line.Unit,
			})
		}
		if err := m.menus.ReplaceIngredients(householdID, menu.ID, lines); err != nil {
			return stats, err
		}
		stats.Menus++
	}

	for _, entry := range doc.MealSets {
		set, err := m.sets.GetByName(householdID, entry.Name)
		if err != nil {
			return stats, err
		}
		if set == nil {
			set, err = m.sets.Create(householdID, entry.Name)
			if err != nil {
				return stats, err
			}
		}
		var reqs []store.RequirementLine
		for _, req := range entry.Requirements {
			dt, err := m.sets.GetDishTypeByName(householdID, req.DishType)
			if err != nil {
				return stats, err
			}
			if dt == nil {
				continue
			}
			reqs = append(reqs, store.RequirementLine{DishTypeID: dt.ID, Quantity: req.Quantity})
		}
		if err := m.sets.ReplaceRequirements(set.ID, reqs); err != nil {
			return stats, err
		}
		stats.MealSets++
	}

	for _, c := range doc.TaskCategories {
		existing, err := m.categories.GetByName(householdID, c.Name)
		if err != nil {
			return stats, err
		}
		if existing == nil {
			if _, err := m.categories.Create(householdID, c.Name, c.SortOrder); err != nil {
				return stats, err
			}
		} else if err := m.categories.UpdateSortOrder(householdID, existing.ID, c.SortOrder); err != nil {
			return stats, err
		}
		stats.TaskCategories++
	}

	for _, tpl := range doc.TaskTemplates {
		existing, err := m.templates.GetByTitle(householdID, tpl.Title)
		if err != nil {
			return stats, err
		}
		if existing == nil {
			_, err = m.templates.Create(householdID, tpl.Title, tpl.Memo, tpl.Category,
				tpl.ProposedPoints, tpl.Priority, tpl.Instructions)
		} else {
			_, err = m.templates.Update(householdID, existing.ID, tpl.Title, tpl.Memo, tpl.Category,
				tpl.ProposedPoints, tpl.Priority, tpl.Instructions)
		}
		if err != nil {
			return stats, err
		}
		stats.TaskTemplates++
	}

	for _, rule := range doc.RecurringRules {
		tpl, err := m.templates.GetByTitle(householdID, rule.TemplateTitle)
		if err != nil {
			return stats, err
		}
		if tpl == nil {
			// Title resolves to nothing; skip rather than fail the import.
			m.logger.Warn("skipping rule for unknown template", "title", rule.TemplateTitle)
			stats.SkippedRules++
			continue
		}
		existing, err := m.rules.GetByTemplateAndFrequency(householdID, tpl.ID, rule.Frequency)
		if err != nil {
			return stats, err
		}
		if existing == nil {
			if _, err := m.rules.Create(householdID, tpl.ID, rule.Frequency, rule.NextRunDate, rule.RelativeDueDays); err != nil {
				return stats, err
			}
			if !rule.Active {
				created, err := m.rules.GetByTemplateAndFrequency(householdID, tpl.ID, rule.Frequency)
				if err != nil {
					return stats, err
				}
				if err := m.rules.SetActive(householdID, created.ID, false); err != nil {
					return stats, err
				}
			}
		} else if _, err := m.rules.Update(householdID, existing.ID, rule.Frequency,
			rule.NextRunDate, rule.RelativeDueDays, rule.Active); err != nil {
			return stats, err
		}
		stats.RecurringRules++
	}

	for _, r := range doc.RewardTemplates {
		existing, err := m.rewards.GetByTitle(householdID, r.Title)
		if err != nil {
			return stats, err
		}
		if existing == nil {
			_, err = m.rewards.Create(householdID, r.Title, r.Description, r.PointCost, r.Active)
		} else {
			_, err = m.rewards.Update(householdID, existing.ID, r.Title, r.Description, r.PointCost, r.Active)
		}
		if err != nil {
			return stats, err
		}
		stats.RewardTemplates++
	}

	m.logger.Info("import finished",
		"household_id", householdID,
		"menus", stats.Menus,
		"templates", stats.TaskTemplates,
		"rules", stats.RecurringRules,
		"skipped_rules", stats.SkippedRules)
	return stats, nil
}

// Validate rejects documents that would fail partway through an import.
func (d *Document) Validate() error {
	for _, rule := range d.RecurringRules {
		switch rule.Frequency {
		case "daily", "weekly", "monthly":
		default:
			return fmt.Errorf("recurring rule %q: unknown frequency %q", rule.TemplateTitle, rule.Frequency)
		}
	}
	return nil
}
