package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/engine"
)

// Result is the outcome of one command. Text is always a displayable message;
// Err is set when the command failed and Exit when the session should end.
type Result struct {
	Text string
	Err  error
	Exit bool
}

// Handler executes parsed commands against an address book.
// A command that fails never modifies the book.
type Handler struct {
	Book         *book.Directory
	Clock        engine.Clock
	Messages     *Messages
	Importer     *engine.Importer
	Credentials  engine.CredentialStore
	SnapshotPath string
	HorizonDays  int
}

// NewHandler wires a handler with the production clock, keyring and HTTP fetcher.
func NewHandler(dir *book.Directory, snapshotPath string, messages *Messages) *Handler {
	credentials := engine.NewKeyringStore()
	return &Handler{
		Book:     dir,
		Clock:    engine.RealClock{},
		Messages: messages,
		Importer: &engine.Importer{
			Fetcher:     engine.NewHTTPFetcher(),
			Credentials: credentials,
		},
		Credentials:  credentials,
		SnapshotPath: snapshotPath,
		HorizonDays:  config.DefaultHorizonDays,
	}
}

type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(h *Handler, ctx context.Context, args []string) (string, error)
}

var registry = map[string]command{
	config.CmdHello:        {config.TKeyUsageHello, 0, 0, (*Handler).hello},
	config.CmdAdd:          {config.TKeyUsageAdd, 2, 2, (*Handler).add},
	config.CmdChange:       {config.TKeyUsageChange, 3, 3, (*Handler).change},
	config.CmdPhone:        {config.TKeyUsagePhone, 1, 1, (*Handler).phone},
	config.CmdAll:          {config.TKeyUsageAll, 0, 0, (*Handler).all},
	config.CmdAddBirthday:  {config.TKeyUsageAddBirthday, 2, 2, (*Handler).addBirthday},
	config.CmdShowBirthday: {config.TKeyUsageShowBirthday, 1, 1, (*Handler).showBirthday},
	config.CmdBirthdays:    {config.TKeyUsageBirthdays, 0, 0, (*Handler).birthdays},
	config.CmdDelete:       {config.TKeyUsageDelete, 1, 1, (*Handler).deleteContact},
	config.CmdRemovePhone:  {config.TKeyUsageRemovePhone, 2, 2, (*Handler).removePhone},
	config.CmdImport:       {config.TKeyUsageImport, 1, 2, (*Handler).importContacts},
	config.CmdExport:       {config.TKeyUsageExport, 1, 1, (*Handler).export},
	config.CmdCalendar:     {config.TKeyUsageCalendar, 1, 1, (*Handler).calendar},
	config.CmdLogin:        {config.TKeyUsageLogin, 2, 2, (*Handler).login},
	config.CmdHelp:         {config.TKeyUsageHelp, 0, 0, (*Handler).help},
	config.CmdClose:        {config.TKeyUsageClose, 0, 0, (*Handler).exit},
	config.CmdExit:         {config.TKeyUsageExit, 0, 0, (*Handler).exit},
}

// Execute runs name with args. It never panics on user input: every failure
// is reported through Result.Err with a one-line message in Result.Text.
func (h *Handler) Execute(ctx context.Context, name string, args []string) Result {
	log := slog.With(
		config.LogKeyComponent, config.CompCommands,
		config.LogKeyCommand, name,
	)

	// Command names are case-insensitive; arguments keep their case.
	cmd, ok := registry[strings.ToLower(name)]
	if !ok {
		return h.failed(log, fail(ErrUnknownCommand, config.TKeyErrUnknownCmd, nil))
	}
	// Arity is checked before any handler runs, so a usage error never mutates the book.
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return h.failed(log, fail(ErrUsage, cmd.usage, nil))
	}

	text, err := cmd.run(h, ctx, args)
	if err != nil {
		return h.failed(log, err)
	}
	log.Debug(config.MsgCommand, config.LogKeyArgs, len(args))
	return Result{Text: text, Exit: isExit(name)}
}

func isExit(name string) bool {
	name = strings.ToLower(name)
	return name == config.CmdClose || name == config.CmdExit
}

// failed renders err as a single "Error: ..." line.
func (h *Handler) failed(log *slog.Logger, err error) Result {
	log.Info(config.MsgCommandFailed, config.LogKeyError, err)

	// Failures carry their own translation key; anything else shows its raw text.
	var f *failure
	msg := err.Error()
	if errors.As(err, &f) {
		msg = h.Messages.Get(f.key, f.data)
	}
	return Result{
		Text: h.Messages.Get(config.TKeyErrPrefix, map[string]any{"Message": msg}),
		Err:  err,
	}
}

// invalid converts a validation error of the record model into a failure.
func invalid(err error) error {
	switch {
	case errors.Is(err, book.ErrInvalidPhone):
		return fail(err, config.TKeyErrPhone, nil)
	case errors.Is(err, book.ErrInvalidDate):
		return fail(err, config.TKeyErrDate, nil)
	case errors.Is(err, book.ErrEmptyName):
		return fail(err, config.TKeyErrName, nil)
	case errors.Is(err, book.ErrAlreadySet):
		return fail(err, config.TKeyErrAlreadySet, nil)
	default:
		return err
	}
}

func (h *Handler) find(name string) (*book.Record, error) {
	r, ok := h.Book.Find(name)
	if !ok {
		return nil, fail(book.ErrNotFound, config.TKeyErrNotFound, map[string]any{"Name": name})
	}
	return r, nil
}

func (h *Handler) hello(_ context.Context, _ []string) (string, error) {
	return h.Messages.Get(config.TKeyHello, nil), nil
}

func (h *Handler) help(_ context.Context, _ []string) (string, error) {
	return h.Messages.Get(config.TKeyHelp, nil), nil
}

// add creates the contact or appends the phone to an existing one.
func (h *Handler) add(_ context.Context, args []string) (string, error) {
	name, raw := args[0], args[1]
	// Validate before looking the contact up: an invalid phone creates nothing.
	phone, err := book.NewPhone(raw)
	if err != nil {
		return "", invalid(err)
	}

	if r, ok := h.Book.Find(name); ok {
		r.AppendPhone(phone)
		return h.Messages.Get(config.TKeyPhoneAppended, map[string]any{"Name": name}), nil
	}

	r, err := book.NewRecord(name)
	if err != nil {
		return "", invalid(err)
	}
	r.AppendPhone(phone)
	h.Book.Add(r)
	return h.Messages.Get(config.TKeyContactAdded, map[string]any{"Name": name, "Phone": raw}), nil
}

func (h *Handler) change(_ context.Context, args []string) (string, error) {
	name, oldRaw, newRaw := args[0], args[1], args[2]
	r, err := h.find(name)
	if err != nil {
		return "", err
	}
	if err := r.EditPhone(oldRaw, newRaw); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			return "", fail(err, config.TKeyErrPhoneMiss, map[string]any{"Phone": oldRaw})
		}
		return "", invalid(err)
	}
	return h.Messages.Get(config.TKeyPhoneChanged, map[string]any{"Name": name, "Old": oldRaw, "New": newRaw}), nil
}

func (h *Handler) phone(_ context.Context, args []string) (string, error) {
	r, err := h.find(args[0])
	if err != nil {
		return "", err
	}
	phones := lo.Map(r.Phones(), func(p book.Phone, _ int) string { return p.String() })
	return h.Messages.Get(config.TKeyPhoneList, map[string]any{
		"Name":   r.Name(),
		"Phones": strings.Join(phones, config.PhoneListSeparator),
	}), nil
}

func (h *Handler) all(_ context.Context, _ []string) (string, error) {
	if h.Book.Len() == 0 {
		return h.Messages.Get(config.TKeyBookEmpty, nil), nil
	}
	return describe(h.Book.Records()), nil
}

func (h *Handler) addBirthday(_ context.Context, args []string) (string, error) {
	name, raw := args[0], args[1]
	r, err := h.find(name)
	if err != nil {
		return "", err
	}
	if err := r.SetBirthday(raw); err != nil {
		return "", invalid(err)
	}
	return h.Messages.Get(config.TKeyBirthdayAdded, map[string]any{"Name": name}), nil
}

func (h *Handler) showBirthday(_ context.Context, args []string) (string, error) {
	name := args[0]
	r, err := h.find(name)
	if err != nil {
		return "", err
	}
	b, ok := r.Birthday()
	if !ok {
		return h.Messages.Get(config.TKeyBirthdayNone, map[string]any{"Name": name}), nil
	}
	return h.Messages.Get(config.TKeyBirthdayShow, map[string]any{"Name": name, "Birthday": b.String()}), nil
}

func (h *Handler) birthdays(_ context.Context, _ []string) (string, error) {
	horizon := h.HorizonDays
	if horizon <= 0 {
		horizon = config.DefaultHorizonDays
	}
	upcoming := h.Book.UpcomingBirthdays(h.Clock.Now(), horizon)
	if len(upcoming) == 0 {
		return h.Messages.Get(config.TKeyNoUpcoming, nil), nil
	}
	return describe(upcoming), nil
}

func (h *Handler) deleteContact(_ context.Context, args []string) (string, error) {
	name := args[0]
	if _, err := h.find(name); err != nil {
		return "", err
	}
	h.Book.Delete(name)
	return h.Messages.Get(config.TKeyContactDeleted, map[string]any{"Name": name}), nil
}

func (h *Handler) removePhone(_ context.Context, args []string) (string, error) {
	name, raw := args[0], args[1]
	r, err := h.find(name)
	if err != nil {
		return "", err
	}
	// Record.RemovePhone is a silent no-op; the user still hears about a typo.
	if !r.HasPhone(raw) {
		return "", fail(book.ErrNotFound, config.TKeyErrPhoneMiss, map[string]any{"Phone": raw})
	}
	r.RemovePhone(raw)
	return h.Messages.Get(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": raw}), nil
}

// importContacts merges a vCard source into the book once it has been read completely.
func (h *Handler) importContacts(ctx context.Context, args []string) (string, error) {
	source := args[0]
	user := ""
	if len(args) == 2 {
		user = args[1]
	}

	importer := h.Importer
	if importer == nil {
		importer = &engine.Importer{}
	}
	records, err := importer.Import(ctx, source, user)
	if err != nil {
		return "", fail(err, config.TKeyErrImport, map[string]any{"Cause": err.Error()})
	}
	// The import is complete at this point; merging cannot fail halfway.
	for _, r := range records {
		h.Book.Merge(r)
	}
	return h.Messages.Get(config.TKeyImported, map[string]any{"Count": len(records), "Source": source}), nil
}

func (h *Handler) export(_ context.Context, args []string) (string, error) {
	path := args[0]
	count, err := engine.ExportVCardFile(path, h.Book)
	if err != nil {
		return "", fail(err, config.TKeyErrExport, map[string]any{"Cause": err.Error()})
	}
	return h.Messages.Get(config.TKeyExported, map[string]any{"Count": count, "Path": path}), nil
}

func (h *Handler) calendar(ctx context.Context, args []string) (string, error) {
	path := args[0]
	gen := &engine.CalendarGenerator{
		Clock:         h.Clock,
		FormatSummary: h.eventSummary,
	}
	count, err := gen.WriteCalendarFile(ctx, path, h.Book)
	if err != nil {
		return "", fail(err, config.TKeyErrExport, map[string]any{"Cause": err.Error()})
	}
	return h.Messages.Get(config.TKeyCalendarWritten, map[string]any{"Count": count, "Path": path}), nil
}

func (h *Handler) eventSummary(name string, age int) string {
	switch {
	case age == 0:
		return h.Messages.Get(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
	case age > 0:
		return h.Messages.Get(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
	default:
		return h.Messages.Get(config.TKeyEvtSummary, map[string]any{"Name": name})
	}
}

func (h *Handler) login(_ context.Context, args []string) (string, error) {
	user, password := args[0], args[1]
	// Fall back to the OS keyring when no store was injected.
	store := h.Credentials
	if store == nil {
		store = engine.NewKeyringStore()
	}
	if err := store.SetPassword(user, password); err != nil {
		return "", fail(err, config.TKeyErrLogin, map[string]any{"Cause": err.Error()})
	}
	return h.Messages.Get(config.TKeyLoginStored, map[string]any{"User": user}), nil
}

// exit persists the book. When saving fails the session goes on, so nothing is lost.
func (h *Handler) exit(_ context.Context, _ []string) (string, error) {
	if err := engine.SaveFile(h.SnapshotPath, h.Book); err != nil {
		return "", fail(err, config.TKeyErrSave, map[string]any{"Cause": err.Error()})
	}
	return h.Messages.Get(config.TKeyGoodbye, nil), nil
}

func describe(records []*book.Record) string {
	lines := lo.Map(records, func(r *book.Record, _ int) string { return r.String() })
	return strings.Join(lines, "\n")
}
