package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jbweber/homelab/clinic/internal/config"
	"github.com/jbweber/homelab/clinic/internal/datastore"
	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/jbweber/homelab/clinic/internal/migrations"
	"github.com/jbweber/homelab/clinic/internal/repository"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type app struct {
	configFile string
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:          "clinic",
		Short:        "Clinic patient, staff and appointment store",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to a config file (yaml, json or toml)")

	rootCmd.AddCommand(a.migrateCmd())
	rootCmd.AddCommand(a.statusCmd())
	rootCmd.AddCommand(a.listCmd())

	return rootCmd
}

// open loads the config, builds the logger and opens the migrated database.
func (a *app) open(cmd *cobra.Command) (*config.Config, zerolog.Logger, *datastore.Datastore, error) {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	logger, err := cfg.NewLogger(a.errOut)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	ds, err := cfg.InitializeDatabase(cmd.Context())
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.DBPath).Msg("failed to initialize database")
		return nil, logger, nil, err
	}

	return cfg, logger, ds, nil
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ds, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer ds.Close()

			version, err := ds.SchemaVersion(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			logger.Info().Str("db_path", cfg.DBPath).Int64("version", version).Msg("database ready")
			fmt.Fprintf(a.out, "Schema at version %d.\n", version)
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema version and row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, ds, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer ds.Close()

			ctx := cmd.Context()
			version, err := ds.SchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fk, err := ds.ForeignKeysEnabled(ctx)
			if err != nil {
				return fmt.Errorf("failed to read foreign key setting: %w", err)
			}

			fmt.Fprintf(a.out, "Database:       %s\n", cfg.DBPath)
			fmt.Fprintf(a.out, "Schema version: %d\n", version)
			fmt.Fprintf(a.out, "Foreign keys:   %t\n\n", fk)

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tROWS")
			for _, table := range migrations.Tables() {
				var n int64
				if err := ds.Gorm.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
					return fmt.Errorf("failed to count %s: %w", table, err)
				}
				fmt.Fprintf(tw, "%s\t%d\n", table, n)
			}
			return tw.Flush()
		},
	}
}

var listEntities = []string{"patients", "staff", "departments", "appointments", "records"}

func (a *app) listCmd() *cobra.Command {
	var limit, offset int
	var format string

	cmd := &cobra.Command{
		Use:       "list <" + strings.Join(listEntities, "|") + ">",
		Short:     "List stored entities",
		ValidArgs: listEntities,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be \"table\" or \"json\", got %q", format)
			}

			_, logger, ds, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer ds.Close()

			clinic := repository.NewClinic(ds.Gorm, logger)
			page := []repository.QueryShaper{}
			if limit > 0 {
				page = append(page, repository.Paginate(offset, limit))
			}

			ctx := cmd.Context()
			switch args[0] {
			case "patients":
				rows, err := clinic.Patients.GetAll(ctx, append(page, repository.OrderBy("id"))...)
				if err != nil {
					return err
				}
				return render(a.out, format, rows, []string{"ID", "NAME", "BIRTHDATE", "EMAIL", "PHONE"},
					func(p domain.Patient) []string {
						return []string{id(p.ID), p.FullName(), p.Birthdate.Format(dateLayout), p.Email, p.PhoneNumber}
					})
			case "staff":
				rows, err := clinic.Staff.GetAll(ctx, append(page, repository.Preload("Department"), repository.OrderBy("id"))...)
				if err != nil {
					return err
				}
				return render(a.out, format, rows, []string{"ID", "NAME", "ROLE", "DEPARTMENT", "EMAIL"},
					func(s domain.Staff) []string {
						dept := ""
						if s.Department != nil {
							dept = s.Department.Name
						}
						return []string{id(s.ID), s.FullName(), s.Role, dept, s.Email}
					})
			case "departments":
				rows, err := clinic.Departments.GetAll(ctx, append(page, repository.Preload("Staffs"), repository.OrderBy("id"))...)
				if err != nil {
					return err
				}
				return render(a.out, format, rows, []string{"ID", "NAME", "STAFF"},
					func(d domain.Department) []string {
						return []string{id(d.ID), d.Name, strconv.Itoa(len(d.Staffs))}
					})
			case "appointments":
				rows, err := clinic.Appointments.GetAll(ctx, append(page,
					repository.Preload("Patient"), repository.Preload("Staff"), repository.OrderBy("date"), repository.OrderBy("id"))...)
				if err != nil {
					return err
				}
				return render(a.out, format, rows, []string{"ID", "DATE", "PATIENT", "STAFF", "REASON", "STATUS"},
					func(ap domain.Appointment) []string {
						patient, staff := "", ""
						if ap.Patient != nil {
							patient = ap.Patient.FullName()
						}
						if ap.Staff != nil {
							staff = ap.Staff.FullName()
						}
						return []string{id(ap.ID), ap.Date.Format("2006-01-02 15:04"), patient, staff, ap.Reason, string(ap.Status())}
					})
			default: // records
				rows, err := clinic.MedicalRecords.GetAll(ctx, append(page,
					repository.Preload("Patient"), repository.OrderBy("record_date DESC"), repository.OrderBy("id DESC"))...)
				if err != nil {
					return err
				}
				return render(a.out, format, rows, []string{"ID", "DATE", "PATIENT", "DIAGNOSIS", "NOTES"},
					func(r domain.MedicalRecord) []string {
						patient := ""
						if r.Patient != nil {
							patient = r.Patient.FullName()
						}
						return []string{id(r.ID), r.RecordDate.Format(dateLayout), patient, r.Diagnosis, strings.Join(r.Notes, " | ")}
					})
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to list, 0 for all")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

// render writes rows as an aligned table or as a JSON array.
func render[T any](w io.Writer, format string, rows []T, header []string, cells func(T) []string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(cells(row), "\t"))
	}
	return tw.Flush()
}
