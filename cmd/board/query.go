package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mesaYaBoard/internal/modules/reservations/domain"
	"mesaYaBoard/internal/modules/reservations/infrastructure"
	"mesaYaBoard/internal/modules/reservations/query"
	"mesaYaBoard/internal/shared/logging"
)

// queryDocument is the YAML form of a saved board query.
type queryDocument struct {
	Filters map[string]string `yaml:"filters"`
	Search  string            `yaml:"search"`
	Sort    string            `yaml:"sort"`
}

type queryOptions struct {
	file      string
	queryFile string
	filters   map[domain.FilterField]string
	search    *string
	sort      *string
	timezone  string
	format    string
	logLevel  string
}

func newQueryCmd() *cobra.Command {
	var (
		opts                                      queryOptions
		status, date, shift, area, search, sortBy string
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, search and sort a reservation file and print the resulting view",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.filters = make(map[domain.FilterField]string)
			flags := cmd.Flags()
			for field, value := range map[domain.FilterField]string{
				domain.FieldStatus: status,
				domain.FieldDate:   date,
				domain.FieldShift:  shift,
				domain.FieldArea:   area,
			} {
				if flags.Changed(string(field)) {
					opts.filters[field] = value
				}
			}
			if flags.Changed("search") {
				opts.search = &search
			}
			if flags.Changed("sort") {
				opts.sort = &sortBy
			}
			if opts.file == "" {
				opts.file = os.Getenv("RESERVATIONS_FILE")
			}
			return runQuery(cmd.OutOrStdout(), opts, time.Now)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "reservation file (YAML or JSON); defaults to $RESERVATIONS_FILE")
	f.StringVarP(&opts.queryFile, "query", "q", "", "YAML file with filters, search and sort")
	f.StringVar(&status, "status", "", "status filter")
	f.StringVar(&date, "date", "", "date filter (past or future)")
	f.StringVar(&shift, "shift", "", "shift filter")
	f.StringVar(&area, "area", "", "area filter")
	f.StringVar(&search, "search", "", "guest name search")
	f.StringVar(&sortBy, "sort", "", "sort key (businessDate, shift, area, status, quantity)")
	f.StringVar(&opts.timezone, "timezone", "Local", "zone start and end times are shown in")
	f.StringVar(&opts.format, "format", "json", "output format (json or text)")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	return cmd
}

func runQuery(out io.Writer, opts queryOptions, now func() time.Time) error {
	logger := logging.New(os.Stderr, logging.Config{Level: opts.logLevel})

	if strings.TrimSpace(opts.file) == "" {
		return fmt.Errorf("no reservation file given")
	}
	raw, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read reservations: %w", err)
	}
	reservations, err := infrastructure.DecodeReservationDocument(raw)
	if err != nil {
		return err
	}

	doc, err := loadQueryDocument(opts.queryFile)
	if err != nil {
		return err
	}
	var criteria domain.FilterCriteria
	for field, value := range doc.Filters {
		if err := criteria.Set(domain.FilterField(field), value); err != nil {
			return err
		}
	}
	for field, value := range opts.filters {
		if err := criteria.Set(field, value); err != nil {
			return err
		}
	}
	search, sortKey := doc.Search, doc.Sort
	if opts.search != nil {
		search = *opts.search
	}
	if opts.sort != nil {
		sortKey = *opts.sort
	}

	location, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	view := query.Derive(reservations, criteria, search, domain.ParseSortKey(sortKey), query.Options{Now: now, Location: location})
	for _, skipped := range view.Skipped {
		logger.Warn("record skipped", "index", skipped.Index, "id", skipped.ID, "reason", skipped.Reason)
	}

	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "text":
		return writeText(out, view)
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func loadQueryDocument(path string) (queryDocument, error) {
	var doc queryDocument
	if strings.TrimSpace(path) == "" {
		return doc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read query: %w", err)
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode query: %w", err)
	}
	return doc, nil
}

// writeText prints one row per item, wrapping matched name runs in brackets.
func writeText(out io.Writer, view query.DerivedView) error {
	if view.Empty() {
		_, err := fmt.Fprintln(out, "no reservations")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tGUEST\tDATE\tTIME\tSHIFT\tAREA\tSTATUS\tQTY\tNOTES")
	for _, item := range view.Items {
		var name strings.Builder
		for _, segment := range item.GuestName.Segments() {
			if segment.Matched {
				name.WriteString("[" + segment.Text + "]")
				continue
			}
			name.WriteString(segment.Text)
		}
		r := item.Reservation
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s-%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, name.String(), r.BusinessDate, item.StartTime, item.EndTime, r.Shift, r.Area, r.Status, r.Quantity, item.Notes)
	}
	fmt.Fprintf(tw, "\n%d of %d shown\n", len(view.Items), view.Total)
	return tw.Flush()
}
