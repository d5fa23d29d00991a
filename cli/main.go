package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#30a46c")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ffd60a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu    list.Model
	pantryView  table.Model
	recipe      *Recipe
	tips        []string
	expiring    []ExpiringItem
	expired     []ExpiredItem
	summary     *PreferenceSummary
	textInput   textinput.Model
	spinner     spinner.Model
	client      *ApiClient
	loading     bool
	currentView string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Generate Recipe", desc: "Suggest a recipe from ingredients you have"},
		item{title: "Pantry", desc: "View tracked pantry items"},
		item{title: "Expiring Soon", desc: "Items to use before they go to waste"},
		item{title: "Add Pantry Item", desc: "Track a new item and its expiry date"},
		item{title: "Waste Tips", desc: "Storage and usage tips for your ingredients"},
		item{title: "Preferences", desc: "View your dietary profile"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "SmartChef CLI"

	// Initialize pantry table
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 20},
		{Title: "Quantity", Width: 10},
		{Title: "Category", Width: 12},
		{Title: "Expires", Width: 12},
	}
	pantryTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "tomatoes, basil, pasta"
	ti.CharLimit = 200
	ti.Width = 50

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		pantryView:  pantryTable,
		spinner:     s,
		textInput:   ti,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == "main" {
				return m, tea.Quit
			}
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Generate Recipe":
						m.currentView = "ingredients_input"
						m.error = ""
						m.textInput.Placeholder = "tomatoes, basil, pasta"
						m.textInput.SetValue("")
						m.textInput.Focus()
					case "Pantry":
						m.currentView = "pantry"
						m.loading = true
						return m, fetchPantry(m.client)
					case "Expiring Soon":
						m.currentView = "expiring"
						m.loading = true
						return m, fetchExpiring(m.client)
					case "Add Pantry Item":
						m.currentView = "add_item"
						m.error = ""
						m.textInput.Placeholder = "Milk, 2026-09-05, 1L, Dairy"
						m.textInput.SetValue("")
						m.textInput.Focus()
					case "Waste Tips":
						m.currentView = "tips_input"
						m.error = ""
						m.textInput.Placeholder = "spinach, bananas"
						m.textInput.SetValue("")
						m.textInput.Focus()
					case "Preferences":
						m.currentView = "preferences"
						m.loading = true
						return m, fetchSummary(m.client)
					}
				}
			} else if m.currentView == "ingredients_input" {
				ingredients := splitCSV(m.textInput.Value())
				if len(ingredients) == 0 {
					m.error = "Please enter at least one ingredient"
					return m, nil
				}
				m.currentView = "recipe"
				m.loading = true
				m.error = ""
				return m, generateRecipe(m.client, ingredients)
			} else if m.currentView == "tips_input" {
				ingredients := splitCSV(m.textInput.Value())
				if len(ingredients) == 0 {
					m.error = "Please enter at least one ingredient"
					return m, nil
				}
				m.currentView = "tips"
				m.loading = true
				m.error = ""
				return m, fetchTips(m.client, ingredients)
			} else if m.currentView == "add_item" {
				return m, m.submitPantryItem()
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.textInput.Blur()
			}
		}
	case recipeMsg:
		m.loading = false
		m.recipe = msg.recipe
		return m, nil
	case tipsMsg:
		m.loading = false
		m.tips = msg.tips
		return m, nil
	case pantryMsg:
		m.loading = false
		m.pantryView.SetRows(pantryRows(msg.items))
		return m, nil
	case expiringMsg:
		m.loading = false
		m.expiring = msg.expiring
		m.expired = msg.expired
		return m, nil
	case summaryMsg:
		m.loading = false
		m.summary = msg.summary
		return m, nil
	case itemAddedMsg:
		m.currentView = "pantry"
		m.loading = true
		m.error = ""
		return m, fetchPantry(m.client)
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "pantry":
		m.pantryView, cmd = m.pantryView.Update(msg)
	case "ingredients_input", "tips_input", "add_item":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "ingredients_input":
		view := titleStyle.Render("Generate Recipe") + "\n\n"
		view += "What ingredients do you have? (comma separated)\n\n"
		view += m.textInput.View() + "\n"
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'enter' to generate, 'esc' to go back"
		return docStyle.Render(view)
	case "recipe":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Cooking up a recipe...")
		}
		if m.error != "" {
			return docStyle.Render(errorStyle.Render(m.error) + "\n\nPress 'esc' to go back")
		}
		return docStyle.Render(recipeView(m.recipe))
	case "tips_input":
		view := titleStyle.Render("Waste Reduction Tips") + "\n\n"
		view += "Which ingredients do you want tips for? (comma separated)\n\n"
		view += m.textInput.View() + "\n"
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'enter' to fetch tips, 'esc' to go back"
		return docStyle.Render(view)
	case "tips":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Fetching tips...")
		}
		view := titleStyle.Render("Waste Reduction Tips") + "\n\n"
		for _, tip := range m.tips {
			view += "• " + tip + "\n"
		}
		view += "\nPress 'esc' to go back"
		return docStyle.Render(view)
	case "pantry":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Loading pantry...")
		}
		help := "\nPress 'esc' to go back\n"
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		return docStyle.Render(titleStyle.Render("Pantry") + "\n\n" + m.pantryView.View() + help)
	case "expiring":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Checking expiry dates...")
		}
		return docStyle.Render(expiryView(m.expiring, m.expired))
	case "add_item":
		view := titleStyle.Render("Add Pantry Item") + "\n\n"
		view += "Format: <name>, <expiry YYYY-MM-DD>, <quantity>, <category>\n\n"
		view += m.textInput.View() + "\n"
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'enter' to add, 'esc' to cancel"
		return docStyle.Render(view)
	case "preferences":
		if m.loading {
			return docStyle.Render(m.spinner.View() + " Loading preferences...")
		}
		return docStyle.Render(summaryView(m.summary))
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type recipeMsg struct {
	recipe *Recipe
}

type tipsMsg struct {
	tips []string
}

type pantryMsg struct {
	items []PantryItem
}

type expiringMsg struct {
	expiring []ExpiringItem
	expired  []ExpiredItem
}

type summaryMsg struct {
	summary *PreferenceSummary
}

type itemAddedMsg struct{}

type errorMsg struct {
	err string
}

// generateRecipe requests a recipe from the API
func generateRecipe(client *ApiClient, ingredients []string) tea.Cmd {
	return func() tea.Msg {
		recipe, err := client.GenerateRecipe(ingredients, nil, true)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error generating recipe: %v", err)}
		}
		return recipeMsg{recipe: recipe}
	}
}

// fetchTips retrieves waste reduction tips
func fetchTips(client *ApiClient, ingredients []string) tea.Cmd {
	return func() tea.Msg {
		tips, err := client.GetWasteTips(ingredients)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching tips: %v", err)}
		}
		return tipsMsg{tips: tips}
	}
}

// fetchPantry retrieves the pantry items
func fetchPantry(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetPantryItems()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching pantry: %v", err)}
		}
		return pantryMsg{items: items}
	}
}

// fetchExpiring retrieves expiring and expired items
func fetchExpiring(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		expiring, err := client.GetExpiringItems(7)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching expiring items: %v", err)}
		}
		expired, err := client.GetExpiredItems()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching expired items: %v", err)}
		}
		return expiringMsg{expiring: expiring, expired: expired}
	}
}

// fetchSummary retrieves the preference summary
func fetchSummary(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		summary, err := client.GetPreferenceSummary()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching preferences: %v", err)}
		}
		return summaryMsg{summary: summary}
	}
}

// submitPantryItem parses the input line and adds the item
func (m Model) submitPantryItem() tea.Cmd {
	parts := splitCSV(m.textInput.Value())
	if len(parts) < 2 {
		return func() tea.Msg {
			return errorMsg{err: "Need at least a name and an expiry date"}
		}
	}

	name, expiry := parts[0], parts[1]
	quantity, category := "", ""
	if len(parts) > 2 {
		quantity = parts[2]
	}
	if len(parts) > 3 {
		category = parts[3]
	}

	client := m.client
	return func() tea.Msg {
		if _, err := client.AddPantryItem(name, expiry, quantity, category); err != nil {
			return errorMsg{err: fmt.Sprintf("Error adding item: %v", err)}
		}
		return itemAddedMsg{}
	}
}

// splitCSV splits a comma separated input line, trimming whitespace
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// pantryRows converts pantry items to table rows
func pantryRows(items []PantryItem) []table.Row {
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row{
			fmt.Sprintf("%d", it.ID),
			it.Name,
			it.Quantity,
			it.Category,
			it.ExpiryDate,
		}
	}
	return rows
}

// recipeView renders a generated recipe
func recipeView(recipe *Recipe) string {
	if recipe == nil {
		return "No recipe yet.\n\nPress 'esc' to go back"
	}

	view := titleStyle.Render(recipe.Title) + "\n\n"
	if recipe.PrepTime > 0 {
		view += fmt.Sprintf("Prep time: %d minutes\n", recipe.PrepTime)
	}
	if recipe.Servings > 0 {
		view += fmt.Sprintf("Servings: %d\n", recipe.Servings)
	}
	if recipe.Cuisine != "" {
		view += fmt.Sprintf("Cuisine: %s\n", recipe.Cuisine)
	}

	view += "\nIngredients:\n"
	for _, ing := range recipe.Ingredients {
		view += "• " + ing + "\n"
	}

	view += "\nInstructions:\n"
	for i, step := range recipe.Instructions {
		view += fmt.Sprintf("%d. %s\n", i+1, step)
	}

	if recipe.Tips != "" {
		view += "\n" + infoStyle.Render("Tips") + "\n"
		view += recipe.Tips + "\n"
	}

	view += "\nPress 'esc' to go back"
	return view
}

// expiryView renders the expiring and expired item lists
func expiryView(expiring []ExpiringItem, expired []ExpiredItem) string {
	view := titleStyle.Render("Use These First") + "\n\n"

	if len(expiring) == 0 {
		view += "Nothing expiring in the next week.\n"
	} else {
		for _, it := range expiring {
			label := fmt.Sprintf("%s (%s)", it.Name, it.Quantity)
			switch {
			case it.DaysLeft == 0:
				view += warnStyle.Render("TODAY") + " " + label + "\n"
			case it.DaysLeft == 1:
				view += warnStyle.Render("1 day") + " " + label + "\n"
			default:
				view += fmt.Sprintf("%d days  %s\n", it.DaysLeft, label)
			}
		}
	}

	if len(expired) > 0 {
		view += "\n" + errorStyle.Render("Already Expired") + "\n"
		for _, it := range expired {
			view += fmt.Sprintf("%s - %d days ago\n", it.Name, it.DaysExpired)
		}
	}

	view += "\nPress 'esc' to go back"
	return view
}

// summaryView renders the preference profile
func summaryView(summary *PreferenceSummary) string {
	view := titleStyle.Render("Your Preferences") + "\n\n"
	if summary == nil {
		return view + "No preferences stored yet.\n\nPress 'esc' to go back"
	}

	view += "Dietary: " + joinOrNone(summary.DietaryPreferences) + "\n"
	view += "Favorite ingredients: " + joinOrNone(summary.FavoriteIngredients) + "\n"
	view += "Disliked ingredients: " + joinOrNone(summary.DislikedIngredients) + "\n"
	view += "Cuisines: " + joinOrNone(summary.CuisinePreferences) + "\n"

	view += "\nPress 'esc' to go back"
	return view
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
