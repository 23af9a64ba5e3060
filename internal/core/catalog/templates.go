package catalog

import "github.com/craftcrm/platform/internal/core/domain"

const catalogVersion = "2025.2"

// businessTypeDefaults maps a wizard business type to its starter pillars.
var businessTypeDefaults = map[string][]string{
	"agency":      {"sales", "projects"},
	"consulting":  {"sales", "projects", "support"},
	"real_estate": {"sales", "support"},
	"retail":      {"sales", "inventory", "support"},
	"services":    {"sales", "support"},
	"general":     {"sales"},
}

var builtinPillars = []PillarDefinition{
	{
		ID:          "sales",
		Name:        "Sales",
		Description: "Contacts, companies and deal tracking",
		Icon:        "trending-up",
		Color:       "#2563eb",
		Modules: []ModuleDefinition{
			{
				Name:        "contacts",
				DisplayName: "Contacts",
				Fields: []FieldDefinition{
					{Name: "name", Label: "Name", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "email", Label: "Email", Type: domain.FieldEmail, Unique: true, ShowInList: true, ShowInForm: true},
					{Name: "phone", Label: "Phone", Type: domain.FieldPhone, ShowInList: true, ShowInForm: true},
					{Name: "company", Label: "Company", Type: domain.FieldText, ShowInList: true, ShowInForm: true},
					{Name: "status", Label: "Status", Type: domain.FieldSelect, Default: "lead", Options: []string{"lead", "prospect", "customer", "inactive"}, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "notes", Label: "Notes", Type: domain.FieldLongtext, ShowInForm: true},
				},
			},
			{
				Name:        "companies",
				DisplayName: "Companies",
				Fields: []FieldDefinition{
					{Name: "name", Label: "Name", Type: domain.FieldText, Required: true, Unique: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "website", Label: "Website", Type: domain.FieldURL, ShowInList: true, ShowInForm: true},
					{Name: "industry", Label: "Industry", Type: domain.FieldText, ShowInList: true, ShowInForm: true},
					{Name: "employees", Label: "Employees", Type: domain.FieldNumber, ShowInForm: true},
				},
			},
			{
				Name:        "deals",
				DisplayName: "Deals",
				Fields: []FieldDefinition{
					{Name: "title", Label: "Title", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "contact", Label: "Contact", Type: domain.FieldRelation, ShowInList: true, ShowInForm: true},
					{Name: "amount", Label: "Amount", Type: domain.FieldCurrency, ShowInList: true, ShowInForm: true},
					{Name: "stage", Label: "Stage", Type: domain.FieldSelect, Default: "new", Options: []string{"new", "qualified", "proposal", "won", "lost"}, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "close_date", Label: "Close Date", Type: domain.FieldDate, ShowInList: true, ShowInForm: true},
				},
			},
		},
	},
	{
		ID:          "projects",
		Name:        "Projects",
		Description: "Project and task management",
		Icon:        "kanban",
		Color:       "#7c3aed",
		Modules: []ModuleDefinition{
			{
				Name:        "projects",
				DisplayName: "Projects",
				Fields: []FieldDefinition{
					{Name: "name", Label: "Name", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "client", Label: "Client", Type: domain.FieldRelation, ShowInList: true, ShowInForm: true},
					{Name: "status", Label: "Status", Type: domain.FieldSelect, Default: "planned", Options: []string{"planned", "active", "on_hold", "done"}, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "due_date", Label: "Due Date", Type: domain.FieldDate, ShowInList: true, ShowInForm: true},
					{Name: "budget", Label: "Budget", Type: domain.FieldCurrency, ShowInForm: true},
				},
			},
			{
				Name:        "tasks",
				DisplayName: "Tasks",
				Fields: []FieldDefinition{
					{Name: "title", Label: "Title", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "project", Label: "Project", Type: domain.FieldRelation, ShowInList: true, ShowInForm: true},
					{Name: "assignee", Label: "Assignee", Type: domain.FieldText, ShowInList: true, ShowInForm: true},
					{Name: "done", Label: "Done", Type: domain.FieldBoolean, Default: false, ShowInList: true, ShowInForm: true},
					{Name: "due_date", Label: "Due Date", Type: domain.FieldDate, ShowInList: true, ShowInForm: true},
					{Name: "tags", Label: "Tags", Type: domain.FieldMultiselect, Options: []string{"urgent", "blocked", "review", "internal"}, ShowInForm: true},
				},
			},
		},
	},
	{
		ID:          "support",
		Name:        "Support",
		Description: "Customer ticket tracking",
		Icon:        "life-buoy",
		Color:       "#059669",
		Modules: []ModuleDefinition{
			{
				Name:        "tickets",
				DisplayName: "Tickets",
				Fields: []FieldDefinition{
					{Name: "subject", Label: "Subject", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "requester_email", Label: "Requester Email", Type: domain.FieldEmail, Required: true, ShowInList: true, ShowInForm: true},
					{Name: "status", Label: "Status", Type: domain.FieldSelect, Default: "open", Options: []string{"open", "pending", "solved", "closed"}, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "priority", Label: "Priority", Type: domain.FieldSelect, Default: "normal", Options: []string{"low", "normal", "high", "urgent"}, ShowInList: true, ShowInForm: true},
					{Name: "description", Label: "Description", Type: domain.FieldLongtext, ShowInForm: true},
				},
			},
		},
	},
	{
		ID:          "inventory",
		Name:        "Inventory",
		Description: "Products and stock levels",
		Icon:        "package",
		Color:       "#d97706",
		Modules: []ModuleDefinition{
			{
				Name:        "products",
				DisplayName: "Products",
				Fields: []FieldDefinition{
					{Name: "name", Label: "Name", Type: domain.FieldText, Required: true, ShowInList: true, ShowInForm: true, IsSystem: true},
					{Name: "sku", Label: "SKU", Type: domain.FieldText, Required: true, Unique: true, ShowInList: true, ShowInForm: true},
					{Name: "price", Label: "Price", Type: domain.FieldCurrency, ShowInList: true, ShowInForm: true},
					{Name: "stock", Label: "Stock", Type: domain.FieldNumber, Default: float64(0), ShowInList: true, ShowInForm: true},
					{Name: "active", Label: "Active", Type: domain.FieldBoolean, Default: true, ShowInList: true, ShowInForm: true},
				},
			},
		},
	},
}
