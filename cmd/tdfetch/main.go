// Command tdfetch fetches a time series from Twelve Data and prints it.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tdseries/internal/feature/timeseries/adapters/twelvedata"
	"tdseries/internal/feature/timeseries/domain/entity"
	platformhttp "tdseries/internal/platform/http"
)

type fetchFlags struct {
	interval      string
	format        string
	exchange      string
	country       string
	secType       string
	outputSize    int
	decimalPlaces int
	order         string
	timezone      string
	startDate     string
	endDate       string
	previousClose bool
	apiKey        string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:          "tdfetch SYMBOL",
		Short:        "Fetch an OHLCV time series from the Twelve Data API",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.interval, "interval", "i", "1day", "sampling interval (1min..1month)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "tabular", "output format: tabular, time_indexed or raw")
	cmd.Flags().StringVar(&flags.exchange, "exchange", "", "exchange name filter")
	cmd.Flags().StringVar(&flags.country, "country", "", "country filter")
	cmd.Flags().StringVar(&flags.secType, "type", "", "security type: Stock, Index, ETF or REIT")
	cmd.Flags().IntVarP(&flags.outputSize, "outputsize", "n", 0, "number of bars (1..5000)")
	cmd.Flags().IntVar(&flags.decimalPlaces, "dp", -1, "decimal places (0..11)")
	cmd.Flags().StringVar(&flags.order, "order", "", "sort order: ASC or DESC")
	cmd.Flags().StringVar(&flags.timezone, "timezone", "", `"Exchange", "UTC" or an IANA zone name`)
	cmd.Flags().StringVar(&flags.startDate, "start", "", "start bound (ISO 8601 date or date-time)")
	cmd.Flags().StringVar(&flags.endDate, "end", "", "end bound (ISO 8601 date or date-time)")
	cmd.Flags().BoolVar(&flags.previousClose, "previous-close", false, "include the previous close column")
	cmd.Flags().StringVar(&flags.apiKey, "apikey", "", "API key override")

	return cmd
}

func runFetch(cmd *cobra.Command, symbol string, flags fetchFlags) error {
	format, err := twelvedata.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	interval, err := twelvedata.ParseInterval(flags.interval)
	if err != nil {
		return err
	}

	req := twelvedata.Request{
		Symbol:        symbol,
		Interval:      interval,
		Exchange:      flags.exchange,
		Country:       flags.country,
		Type:          twelvedata.SecurityType(flags.secType),
		Order:         twelvedata.Order(flags.order),
		Timezone:      flags.timezone,
		StartDate:     flags.startDate,
		EndDate:       flags.endDate,
		PreviousClose: flags.previousClose,
		APIKey:        flags.apiKey,
	}
	if flags.outputSize != 0 {
		req.OutputSize = twelvedata.Int(flags.outputSize)
	}
	if flags.decimalPlaces >= 0 {
		req.DecimalPlaces = twelvedata.Int(flags.decimalPlaces)
	}

	cfg := twelvedata.LoadConfig()
	client := twelvedata.NewClient(cfg, platformhttp.NewHTTPClient(cfg.Timeout))

	res, err := client.Fetch(cmd.Context(), req, format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case res.Series != nil:
		return printSeries(out, res.Series, interval)
	case res.Index != nil:
		return printJSON(out, res.Index)
	default:
		return printJSON(out, res.Raw)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSeries(out io.Writer, s *entity.Series, interval twelvedata.Interval) error {
	layout := "2006-01-02"
	if interval.SubDaily() {
		layout = "2006-01-02 15:04:05 MST"
	}

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	header := "time\topen\thigh\tlow\tclose\tvolume"
	withPrev := len(s.Bars) > 0 && s.Bars[0].PreviousClose != nil
	if withPrev {
		header += "\tprevious_close"
	}
	fmt.Fprintln(w, header)
	for _, b := range s.Bars {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g", b.Time.Format(layout), b.Open, b.High, b.Low, b.Close, b.Volume)
		if withPrev && b.PreviousClose != nil {
			fmt.Fprintf(w, "\t%g", *b.PreviousClose)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if s.Meta.Symbol != "" {
		fmt.Fprintf(out, "\n%s %s (%s, %s)\n",
			s.Meta.Symbol, s.Meta.Interval, s.Meta.Exchange, s.Meta.ExchangeTimezone)
	}
	return nil
}
