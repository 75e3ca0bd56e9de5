package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Alp4ka/gotable"
)

type listOptions struct {
	file      string
	sqlite    string
	table     string
	query     string
	sort      string
	page      int
	pageSize  int
	search    []string
	columns   []string
	fuzzy     bool
	idField   string
	locked    string
	selected  []string
	selectAll bool
	token     string
	order     []string
}

// newListCmd renders one page of records from a JSON file or a sqlite table.
func newListCmd(root *rootOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Render one page of records",
		Long: `List loads records, filters them by --query, sorts them by --sort and prints
the requested page with its page navigation.

Nested fields are addressed with "__", e.g. user__name. Records whose --locked
field is true cannot be selected.

Example:
  gotable list --file members.json --query ann --sort "name desc"
  gotable list --sqlite app.db --table groups --page 2 --page-size 10
  gotable list --sqlite app.db --table groups --order "team asc" --order "name desc"
  gotable list --file members.json --query ops --select-all --locked protected --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.file, "file", "", "JSON file holding an array of records")
	flags.StringVar(&opts.sqlite, "sqlite", "", "sqlite database file")
	flags.StringVar(&opts.table, "table", "", "sqlite table to list")
	flags.StringVar(&opts.query, "query", "", "free text search query")
	flags.StringVar(&opts.sort, "sort", "", `sort column and direction, e.g. "name desc"`)
	flags.IntVar(&opts.page, "page", 1, "page to show, out of range pages are clamped")
	flags.IntVar(&opts.pageSize, "page-size", 0, "records per page (0 = GOTABLE_PAGE_SIZE)")
	flags.StringSliceVar(&opts.search, "search", nil, "fields searched by --query (default: all columns)")
	flags.StringSliceVar(&opts.columns, "columns", nil, "columns to show (default: every field)")
	flags.BoolVar(&opts.fuzzy, "fuzzy", false, "match the query as a fuzzy subsequence and rank by closeness")
	flags.StringVar(&opts.idField, "id", "id", "field identifying a record")
	flags.StringVar(&opts.locked, "locked", "", "boolean field marking records that cannot be selected")
	flags.StringSliceVar(&opts.selected, "select", nil, "ids of records to select")
	flags.BoolVar(&opts.selectAll, "select-all", false, "select every record matching the query")
	flags.StringVar(&opts.token, "token", "", "listing token from a previous --json output, replaces --query, --sort, --page and --page-size")

	flags.StringSliceVar(&opts.order, "order", nil, `natural order of the sqlite table, e.g. "team asc,name desc" (default: --id asc)`)

	cmd.MarkFlagsMutuallyExclusive("file", "sqlite")
	cmd.MarkFlagsMutuallyExclusive("file", "order")
	cmd.MarkFlagsOneRequired("file", "sqlite")
	cmd.MarkFlagsRequiredTogether("sqlite", "table")

	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *listOptions) error {
	source, err := opts.source()
	if err != nil {
		return err
	}

	records, err := source.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	keys := opts.columns
	if len(keys) == 0 {
		keys = recordKeys(records, opts.idField)
	}
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return nil
	}

	columns := lo.Map(keys, func(key string, _ int) gotable.Column[gotable.Record] {
		return gotable.NewColumn[gotable.Record](key, columnHeader(key))
	})

	idOf := gotable.PathAccessor[gotable.Record](opts.idField)
	tbl, err := gotable.NewTable(func(r gotable.Record) string { return gotable.Text(idOf(r)) }, columns...)
	if err != nil {
		return err
	}

	tbl.WithConfig(root.cfg).
		WithLogger(root.logger.WithField("component", "gotable"))

	searchPaths := lo.Ternary(len(opts.search) > 0, opts.search, keys)
	if len(opts.search) > 0 {
		tbl.WithSearchPaths(searchPaths...)
	}
	if opts.fuzzy {
		tbl.WithCustomSearch(gotable.FuzzySearch(lo.Map(searchPaths, func(path string, _ int) gotable.Accessor[gotable.Record] {
			return gotable.PathAccessor[gotable.Record](path)
		})...))
	}
	if opts.locked != "" {
		locked := gotable.PathAccessor[gotable.Record](opts.locked)
		tbl.WithEligibility(func(r gotable.Record) bool {
			return !truthy(locked(r))
		})
	}

	tbl.SetEntities(records)

	listing, err := opts.listing()
	if err != nil {
		return err
	}
	if err := tbl.ApplyRaw(listing); err != nil {
		return err
	}

	for _, id := range opts.selected {
		if !tbl.Select(id, true) {
			root.logger.WithField("id", id).Warn("record cannot be selected")
		}
	}
	if opts.selectAll {
		tbl.SelectAll(true)
	}

	view := tbl.Render()
	bulk := tbl.BulkIDs()

	if root.json {
		return writeListJSON(cmd.OutOrStdout(), tbl, view, bulk)
	}

	return writeListText(cmd.OutOrStdout(), view, bulk)
}

func (o *listOptions) listing() (gotable.RawListing, error) {
	if o.token != "" {
		return gotable.DecodeListingToken(o.token)
	}

	return gotable.RawListing{
		Query:    o.query,
		Sort:     o.sort,
		Page:     o.page,
		PageSize: o.pageSize,
	}, nil
}

func (o *listOptions) source() (gotable.Source[gotable.Record], error) {
	if o.file != "" {
		records, err := readRecords(o.file)
		if err != nil {
			return nil, err
		}

		return gotable.SliceSource[gotable.Record](records), nil
	}

	db, err := gorm.Open(sqlite.Open(o.sqlite), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	order, err := o.naturalOrder(db)
	if err != nil {
		return nil, err
	}

	return gotable.NewGormSource[gotable.Record](db.Table(o.table)).WithOrder(order...), nil
}

// naturalOrder resolves --order against the columns of the table. The id field
// always ends the ordering unless --order names it.
func (o *listOptions) naturalOrder(db *gorm.DB) (gotable.Orderings, error) {
	byID := gotable.OrderBy{Column: o.idField, Direction: gotable.DirectionASC}
	if len(o.order) == 0 {
		return gotable.Orderings{byID}, nil
	}

	columnTypes, err := db.Migrator().ColumnTypes(o.table)
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", o.table, err)
	}

	mapping := lo.SliceToMap(columnTypes, func(c gorm.ColumnType) (gotable.ColumnAlias, string) {
		return c.Name(), c.Name()
	})

	order, err := gotable.ParseSort(o.order, mapping)
	if err != nil {
		return nil, fmt.Errorf("parse --order: %w", err)
	}

	if !lo.ContainsBy(order, func(ob gotable.OrderBy) bool { return ob.Column == o.idField }) {
		order = append(order, byID)
	}

	return order, nil
}

func readRecords(path string) ([]gotable.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []gotable.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}

	return records, nil
}

// recordKeys returns the top level fields of records, sorted, with idField first.
func recordKeys(records []gotable.Record, idField string) []string {
	keys := lo.Uniq(lo.FlatMap(records, func(r gotable.Record, _ int) []string {
		return lo.Keys(r)
	}))
	slices.Sort(keys)

	if i := slices.Index(keys, idField); i > 0 {
		keys = append([]string{idField}, slices.Delete(keys, i, i+1)...)
	}

	return keys
}

func columnHeader(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, gotable.PathSeparator, " "))
}

func truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}

	b, err := strconv.ParseBool(gotable.Text(v))
	return err == nil && b
}

func selectionMark(row gotable.Row[string, gotable.Record]) string {
	switch {
	case row.Selected:
		return "[x]"
	case row.Eligible:
		return "[ ]"
	default:
		return "[-]"
	}
}

// pageNavigation renders page labels with the current page in brackets.
func pageNavigation(view gotable.View[string, gotable.Record]) string {
	return strings.Join(lo.Map(view.Labels, func(l gotable.PageLabel, _ int) string {
		if l.Number == view.Page {
			return "[" + l.String() + "]"
		}
		return l.String()
	}), " ")
}

func writeListText(out io.Writer, view gotable.View[string, gotable.Record], bulk []string) error {
	if view.TotalItems == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "\t"+strings.Join(view.Headers, "\t"))
	for _, row := range view.Rows {
		cells := lo.Map(row.Cells, func(cell any, _ int) string {
			return gotable.Text(cell)
		})
		fmt.Fprintln(w, selectionMark(row)+"\t"+strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(out, "Page %d of %d (%d records): %s\n", view.Page, view.TotalPages, view.TotalItems, pageNavigation(view))
	if view.ShowBulkActions {
		fmt.Fprintf(out, "Selected: %s\n", strings.Join(bulk, ", "))
	}

	return nil
}

type listOutput struct {
	Listing    gotable.RawListing `json:"listing"`
	Rows       []gotable.Record   `json:"rows"`
	TotalPages int                `json:"totalPages"`
	TotalItems int                `json:"totalItems"`
	Pages      []string           `json:"pages"`
	Prev       string             `json:"prev,omitempty"`
	Next       string             `json:"next,omitempty"`
	Selected   []string           `json:"selected,omitempty"`
}

func writeListJSON(out io.Writer, tbl *gotable.Table[string, gotable.Record], view gotable.View[string, gotable.Record], bulk []string) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	var prev, next string
	if view.Page > 1 {
		prev = tbl.PageToken(gotable.PageLabel{Number: view.Page - 1})
	}
	if view.Page < view.TotalPages {
		next = tbl.PageToken(gotable.PageLabel{Number: view.Page + 1})
	}

	err := enc.Encode(listOutput{
		Listing: tbl.Raw(),
		Rows: lo.Map(view.Rows, func(row gotable.Row[string, gotable.Record], _ int) gotable.Record {
			return row.Record
		}),
		TotalPages: view.TotalPages,
		TotalItems: view.TotalItems,
		Pages: lo.Map(view.Labels, func(l gotable.PageLabel, _ int) string {
			return l.String()
		}),
		Prev:     prev,
		Next:     next,
		Selected: bulk,
	})
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}

	return nil
}
