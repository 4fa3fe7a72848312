package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shoplab/checkout-go/internal/catalog"
	"github.com/shoplab/checkout-go/pkg/checkout"
	"github.com/shoplab/checkout-go/pkg/domain"
	"github.com/shoplab/checkout-go/pkg/shipping"
)

type scenario struct {
	Name        string
	Description string
}

type model struct {
	scenarios []scenario
	selected  int
	status    string
	report    string
	busy      bool
}

func initialModel() model {
	return model{
		scenarios: []scenario{
			{"mixed", "Successful checkout with shippable and digital products"},
			{"funds", "Customer balance cannot cover the total"},
			{"expired", "Adding a product past its use-by date"},
			{"overstock", "Requesting more units than the catalog holds"},
			{"bench", "Run sequential checkouts and report throughput"},
		},
		status: "Ready",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			if m.selected > 0 {
				m.selected--
			}
		case "down":
			if m.selected < len(m.scenarios)-1 {
				m.selected++
			}
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Running..."
			name := m.scenarios[m.selected].Name
			return m, func() tea.Msg { return runScenario(name) }
		}
	case scenarioResult:
		m.busy = false
		m.status = msg.status
		m.report = msg.report
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "checkout-go demo CLI")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Scenarios:")
	for i, scn := range m.scenarios {
		marker := " "
		if i == m.selected {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s\n", marker, scn.Name, scn.Description)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	if m.report != "" {
		fmt.Fprintln(b, "")
		fmt.Fprintln(b, m.report)
	}
	fmt.Fprintln(b, "\nControls: up/down select scenario, enter to run, q to quit")
	return b.String()
}

type scenarioResult struct {
	status string
	report string
}

func runScenario(name string) scenarioResult {
	switch name {
	case "mixed":
		return runMixed()
	case "funds":
		return runInsufficientFunds()
	case "expired":
		return runExpired()
	case "overstock":
		return runOverstock()
	case "bench":
		return runBench()
	default:
		return scenarioResult{status: fmt.Sprintf("unknown scenario %q", name)}
	}
}

// demoShop builds a fresh catalog and orchestrator so every run starts
// from full stock.
func demoShop() (*catalog.Catalog, *checkout.Orchestrator, error) {
	cat := catalog.New()
	in5Days := time.Now().AddDate(0, 0, 5)
	in3Days := time.Now().AddDate(0, 0, 3)

	products := []struct {
		name  string
		price float64
		stock int
		opts  []domain.Option
	}{
		{"Cheese", 100, 10, []domain.Option{domain.ExpiresOn(in5Days), domain.WithWeight(0.2)}},
		{"Biscuits", 150, 5, []domain.Option{domain.ExpiresOn(in3Days), domain.WithWeight(0.7)}},
		{"TV", 500, 3, []domain.Option{domain.WithWeight(15)}},
		{"Mobile", 800, 8, []domain.Option{domain.WithWeight(0.3)}},
		{"Mobile Scratch Card", 50, 20, nil},
	}
	for _, spec := range products {
		p, err := domain.NewProduct(spec.name, spec.price, spec.stock, spec.opts...)
		if err != nil {
			return nil, nil, err
		}
		if err := cat.Register(p); err != nil {
			return nil, nil, err
		}
	}

	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	if err != nil {
		return nil, nil, err
	}
	return cat, checkout.NewOrchestrator(calc), nil
}

func runMixed() scenarioResult {
	cat, orch, err := demoShop()
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}
	customer, _ := domain.NewCustomer("Ahmed Yassin", 2000)
	cart := domain.NewCart()
	for _, line := range []struct {
		name string
		qty  int
	}{
		{"Cheese", 2}, {"Biscuits", 1}, {"TV", 1}, {"Mobile", 1}, {"Mobile Scratch Card", 2},
	} {
		p, err := cat.Lookup(line.name)
		if err != nil {
			return scenarioResult{status: fmt.Sprintf("lookup failed: %v", err)}
		}
		if err := cart.Add(p, line.qty); err != nil {
			return scenarioResult{status: fmt.Sprintf("add failed: %v", err)}
		}
	}

	receipt, err := orch.Checkout(context.Background(), customer, cart)
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("checkout failed: %v", err)}
	}
	return scenarioResult{status: "Checkout committed", report: renderReceipt(receipt)}
}

func runInsufficientFunds() scenarioResult {
	cat, orch, err := demoShop()
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}
	customer, _ := domain.NewCustomer("Poor Customer", 10)
	cart := domain.NewCart()
	mobile, _ := cat.Lookup("Mobile")
	if err := cart.Add(mobile, 1); err != nil {
		return scenarioResult{status: fmt.Sprintf("add failed: %v", err)}
	}
	_, err = orch.Checkout(context.Background(), customer, cart)
	if err == nil {
		return scenarioResult{status: "unexpected success"}
	}
	return scenarioResult{
		status: "Rejected as expected",
		report: fmt.Sprintf("error: %v\nmobile stock unchanged: %d", err, mobile.Stock()),
	}
}

func runExpired() scenarioResult {
	yesterday := time.Now().AddDate(0, 0, -1)
	expired, err := domain.NewProduct("Expired Cheese", 50, 5, domain.ExpiresOn(yesterday), domain.WithWeight(0.3))
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}
	cart := domain.NewCart()
	err = cart.Add(expired, 1)
	if err == nil {
		return scenarioResult{status: "unexpected success"}
	}
	return scenarioResult{
		status: "Rejected as expected",
		report: fmt.Sprintf("error: %v\ncart still empty: %v", err, cart.Empty()),
	}
}

func runOverstock() scenarioResult {
	cat, _, err := demoShop()
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}
	cheese, _ := cat.Lookup("Cheese")
	cart := domain.NewCart()
	err = cart.Add(cheese, 50)
	if err == nil {
		return scenarioResult{status: "unexpected success"}
	}
	return scenarioResult{
		status: "Rejected as expected",
		report: fmt.Sprintf("error: %v\ncart still empty: %v", err, cart.Empty()),
	}
}

func runBench() scenarioResult {
	const rounds = 1000

	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}
	orch := checkout.NewOrchestrator(calc)
	product, err := domain.NewProduct("Bench Widget", 10, rounds, domain.WithWeight(0.5))
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("setup failed: %v", err)}
	}

	var total time.Duration
	var failures int
	start := time.Now()
	for i := 0; i < rounds; i++ {
		customer, _ := domain.NewCustomer("Bench Customer", 100)
		cart := domain.NewCart()
		if err := cart.Add(product, 1); err != nil {
			failures++
			continue
		}
		began := time.Now()
		if _, err := orch.Checkout(context.Background(), customer, cart); err != nil {
			failures++
			continue
		}
		total += time.Since(began)
	}
	elapsed := time.Since(start)

	ok := rounds - failures
	avg := time.Duration(0)
	if ok > 0 {
		avg = total / time.Duration(ok)
	}
	throughput := float64(ok) / elapsed.Seconds()
	return scenarioResult{
		status: "Benchmark finished",
		report: fmt.Sprintf("checkouts=%d failures=%d avg=%s throughput=%.0f tx/s remaining_stock=%d",
			ok, failures, avg, throughput, product.Stock()),
	}
}

func renderReceipt(r *checkout.Receipt) string {
	b := &strings.Builder{}
	if len(r.Manifest) > 0 {
		fmt.Fprintln(b, "** Shipment notice **")
		for _, line := range r.Manifest {
			fmt.Fprintln(b, line)
		}
		fmt.Fprintln(b, "")
	}
	fmt.Fprintln(b, "** Checkout receipt **")
	for _, line := range r.Lines {
		fmt.Fprintf(b, "%dx %s %.2f\n", line.Quantity, line.Name, line.LineTotal)
	}
	fmt.Fprintln(b, "----------------------")
	fmt.Fprintf(b, "Subtotal %.2f\n", r.Subtotal)
	fmt.Fprintf(b, "Shipping %.2f\n", r.ShippingFee)
	fmt.Fprintf(b, "Amount %.2f\n", r.Total)
	fmt.Fprintf(b, "Customer balance after payment: %.2f", r.BalanceAfter)
	return b.String()
}

func main() {
	runCmd := flag.String("run", "", "run scenario non-interactively: mixed|funds|expired|overstock|bench")
	flag.Parse()

	if *runCmd != "" {
		res := runScenario(*runCmd)
		fmt.Println(res.status)
		if res.report != "" {
			fmt.Println(res.report)
		}
		return
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
