package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var promoCmd = &cobra.Command{
	Use:   "promo",
	Short: "Manage promo codes",
}

var promoFlags struct {
	discountType string
	value        string
	minOrder     string
	maxUses      int
	expires      string
	inactive     bool
}

var promoCreateCmd = &cobra.Command{
	Use:   "create CODE",
	Short: "Create a promo code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		promo, err := buildPromo(args[0], time.Now())
		if err != nil {
			return err
		}
		return withStore(func(st store.Store) error {
			if err := st.CreatePromoCode(cmd.Context(), promo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Created promo code %s (%s)\n", promo.Code, promo.ID)
			return nil
		})
	},
}

var promoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List promo codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st store.Store) error {
			promos, err := st.ListPromoCodes(cmd.Context())
			if err != nil {
				return err
			}
			return writePromoTable(cmd.OutOrStdout(), promos)
		})
	},
}

func init() {
	f := promoCreateCmd.Flags()
	f.StringVar(&promoFlags.discountType, "type", string(models.DiscountPercentage), "percentage or fixed")
	f.StringVar(&promoFlags.value, "value", "", "discount value (percent or amount)")
	f.StringVar(&promoFlags.minOrder, "min-order", "", "minimum order subtotal")
	f.IntVar(&promoFlags.maxUses, "max-uses", 0, "usage cap, 0 for unlimited")
	f.StringVar(&promoFlags.expires, "expires", "", "expiry date (YYYY-MM-DD)")
	f.BoolVar(&promoFlags.inactive, "inactive", false, "create the code disabled")
	_ = promoCreateCmd.MarkFlagRequired("value")

	promoCmd.AddCommand(promoCreateCmd, promoListCmd)
	rootCmd.AddCommand(promoCmd)
}

func withStore(fn func(st store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver == "memory" {
		return errors.New("promo commands need the postgres driver")
	}
	st, closeStore, err := openStore(cfg, false)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(st)
}

// buildPromo turns the create flags into a promo code. An expiry date is
// inclusive and runs to the end of that day.
func buildPromo(code string, now time.Time) (*models.PromoCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("code must not be empty")
	}

	promo := &models.PromoCode{Code: code, Active: !promoFlags.inactive}

	switch t := models.DiscountType(promoFlags.discountType); t {
	case models.DiscountPercentage, models.DiscountFixed:
		promo.DiscountType = t
	default:
		return nil, fmt.Errorf("unknown discount type %q", promoFlags.discountType)
	}

	value, err := decimal.NewFromString(promoFlags.value)
	if err != nil || !value.IsPositive() {
		return nil, fmt.Errorf("invalid discount value %q", promoFlags.value)
	}
	if promo.DiscountType == models.DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("percentage discount cannot exceed 100")
	}
	promo.DiscountValue = value

	if promoFlags.minOrder != "" {
		minOrder, err := decimal.NewFromString(promoFlags.minOrder)
		if err != nil || minOrder.IsNegative() {
			return nil, fmt.Errorf("invalid minimum order %q", promoFlags.minOrder)
		}
		promo.MinOrderAmount = decimal.NewNullDecimal(minOrder)
	}

	if promoFlags.maxUses < 0 {
		return nil, errors.New("max-uses must not be negative")
	}
	if promoFlags.maxUses > 0 {
		maxUses := promoFlags.maxUses
		promo.MaxUses = &maxUses
	}

	if promoFlags.expires != "" {
		day, err := time.ParseInLocation("2006-01-02", promoFlags.expires, now.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid expiry date %q", promoFlags.expires)
		}
		end := day.Add(24*time.Hour - time.Nanosecond)
		if end.Before(now) {
			return nil, errors.New("expiry date is in the past")
		}
		promo.ExpiresAt = &end
	}
	return promo, nil
}

func writePromoTable(out io.Writer, promos []models.PromoCode) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tTYPE\tVALUE\tUSES\tACTIVE\tEXPIRES")
	for _, p := range promos {
		uses := fmt.Sprintf("%d", p.CurrentUses)
		if p.MaxUses != nil {
			uses = fmt.Sprintf("%d/%d", p.CurrentUses, *p.MaxUses)
		}
		expires := "-"
		if p.ExpiresAt != nil {
			expires = p.ExpiresAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n", p.Code, p.DiscountType, p.DiscountValue.String(), uses, p.Active, expires)
	}
	return w.Flush()
}
