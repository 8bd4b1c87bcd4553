package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/models"
)

const dateLayout = "2006-01-02"

// SeedFile is the YAML layout accepted by the seed command. Dates are
// YYYY-MM-DD; amounts may be written as numbers or strings.
type SeedFile struct {
	Group   *SeedGroup   `yaml:"group"`
	Members []SeedMember `yaml:"members"`
}

// SeedGroup replaces the group settings when present.
type SeedGroup struct {
	Name                 string          `yaml:"name"`
	MonthlySavingsAmount decimal.Decimal `yaml:"monthlySavingsAmount"`
	DefaultInterestRate  decimal.Decimal `yaml:"defaultInterestRate"`
	DueDay               int             `yaml:"dueDay"`
}

type SeedMember struct {
	Name        string          `yaml:"name"`
	Phone       string          `yaml:"phone"`
	JoiningDate string          `yaml:"joiningDate"`
	LoanCap     decimal.Decimal `yaml:"loanCap"`
	DueDay      *int            `yaml:"dueDay"`
	Loans       []SeedLoan      `yaml:"loans"`
	Payments    []SeedPayment   `yaml:"payments"`
}

type SeedLoan struct {
	Date   string          `yaml:"date"`
	Amount decimal.Decimal `yaml:"amount"`
	Rate   decimal.Decimal `yaml:"rate"`
}

// SeedPayment is dated on the first of its month unless Date is set.
type SeedPayment struct {
	Month     models.Month    `yaml:"month"`
	Date      string          `yaml:"date"`
	Savings   decimal.Decimal `yaml:"savings"`
	Principal decimal.Decimal `yaml:"principal"`
	Interest  decimal.Decimal `yaml:"interest"`
	Penalty   decimal.Decimal `yaml:"penalty"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed -f <file.yaml>",
		Short: "Add members, loans and payments from a YAML file",
		Long: `Add members, loans and payments from a YAML file.

Every entry goes through the same validation as the web app, so loan caps
and phone uniqueness are enforced. Loans and payments are replayed per
member in date order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
			var seed SeedFile
			if err := yaml.Unmarshal(raw, &seed); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			var now time.Time
			b, closeBook, err := openBook(cmd.Context(), rootOpts, book.WithClock(func() time.Time { return now }))
			if err != nil {
				return err
			}
			defer closeBook()

			clock := func(t time.Time) { now = t }
			counts, err := applySeed(cmd.Context(), b, seed, clock)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d members, %d loans, %d payments\n",
				counts.members, counts.loans, counts.payments)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type seedCounts struct {
	members, loans, payments int
}

type seedEvent struct {
	at      time.Time
	loan    *SeedLoan
	payment *SeedPayment
}

func applySeed(ctx context.Context, b *book.Book, seed SeedFile, setClock func(time.Time)) (seedCounts, error) {
	var counts seedCounts
	admin := auth.AdminUser
	setClock(time.Now().UTC())

	if g := seed.Group; g != nil {
		current := b.Snapshot().Settings
		in := book.SettingsInput{
			Name:                 g.Name,
			MonthlySavingsAmount: g.MonthlySavingsAmount,
			DefaultInterestRate:  g.DefaultInterestRate,
			DueDay:               g.DueDay,
			InitialGrowthSavings: current.InitialGrowthSavings,
			InitialNetFunds:      current.InitialNetFunds,
		}
		if in.Name == "" {
			in.Name = current.Name
		}
		if in.DueDay == 0 {
			in.DueDay = current.DueDay
		}
		if _, err := b.UpdateSettings(ctx, admin, in); err != nil {
			return counts, fmt.Errorf("group: %w", err)
		}
	}

	for i, sm := range seed.Members {
		joined, err := parseDate(sm.JoiningDate)
		if err != nil {
			return counts, fmt.Errorf("member %d joiningDate: %w", i+1, err)
		}
		member, err := b.AddMember(ctx, admin, book.MemberInput{
			Name:        sm.Name,
			Phone:       sm.Phone,
			JoiningDate: joined,
			LoanCap:     sm.LoanCap,
			DueDay:      sm.DueDay,
		})
		if err != nil {
			return counts, fmt.Errorf("member %q: %w", sm.Name, err)
		}
		counts.members++

		events, err := memberEvents(sm)
		if err != nil {
			return counts, fmt.Errorf("member %q: %w", sm.Name, err)
		}
		for _, ev := range events {
			setClock(ev.at)
			switch {
			case ev.loan != nil:
				if _, err := b.IssueLoan(ctx, admin, member.ID, ev.loan.Amount, ev.loan.Rate); err != nil {
					return counts, fmt.Errorf("member %q loan on %s: %w", sm.Name, ev.at.Format(dateLayout), err)
				}
				counts.loans++
			case ev.payment != nil:
				p := ev.payment
				_, err := b.RecordPayment(ctx, admin, models.PaymentRecord{
					MemberID:      member.ID,
					Month:         p.Month,
					Savings:       p.Savings,
					PrincipalPaid: p.Principal,
					InterestPaid:  p.Interest,
					Penalty:       p.Penalty,
				})
				if err != nil {
					return counts, fmt.Errorf("member %q payment for %s: %w", sm.Name, p.Month, err)
				}
				counts.payments++
			}
		}
	}
	return counts, nil
}

// memberEvents orders a member's loans and payments by date, loans first on
// equal dates.
func memberEvents(sm SeedMember) ([]seedEvent, error) {
	var events []seedEvent
	for i := range sm.Loans {
		at, err := parseDate(sm.Loans[i].Date)
		if err != nil {
			return nil, fmt.Errorf("loan %d date: %w", i+1, err)
		}
		events = append(events, seedEvent{at: at, loan: &sm.Loans[i]})
	}
	for i := range sm.Payments {
		p := &sm.Payments[i]
		var at time.Time
		var err error
		if p.Date != "" {
			at, err = parseDate(p.Date)
		} else {
			at, err = time.Parse("2006-01", string(p.Month))
		}
		if err != nil {
			return nil, fmt.Errorf("payment %d date: %w", i+1, err)
		}
		events = append(events, seedEvent{at: at, payment: p})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})
	return events, nil
}

// parseDate accepts YYYY-MM-DD. The empty string is the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
