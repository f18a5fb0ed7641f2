package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-Phonebook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName          = "Go Phonebook"
	AppID            = "com.github.tartampluch.go-phonebook"
	KeyringService   = "com.github.tartampluch.go-phonebook"
	LogFileName      = "app.log"
	SnapshotFileName = "address_book.snap"
	CommandName      = "go-phonebook"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the snapshot, exports and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagFile         = "file"
	FlagLang         = "lang"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescFile     = "Path of the address book snapshot"
	FlagDescLang     = "Language of the messages (en, fr)"
	CmdShortDesc     = "Interactive personal contact directory"
	CmdLongDesc      = "Stores names, phone numbers and birthdays, and reports the birthdays of the coming week."
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	PromptText       = "Enter a command: "
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdDelete       = "delete"
	CmdRemovePhone  = "remove-phone"
	CmdImport       = "import"
	CmdExport       = "export"
	CmdCalendar     = "calendar"
	CmdLogin        = "login"
	CmdHelp         = "help"
	CmdClose        = "close"
	CmdExit         = "exit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyHello           = "msg_hello"
	TKeyGoodbye         = "msg_goodbye"
	TKeyHelp            = "msg_help"
	TKeyContactAdded    = "msg_contact_added"    // Requires Name, Phone
	TKeyPhoneAppended   = "msg_phone_appended"   // Requires Name
	TKeyPhoneChanged    = "msg_phone_changed"    // Requires Name, Old, New
	TKeyPhoneRemoved    = "msg_phone_removed"    // Requires Name, Phone
	TKeyPhoneList       = "msg_phone_list"       // Requires Name, Phones
	TKeyBookEmpty       = "msg_book_empty"
	TKeyBirthdayAdded   = "msg_birthday_added"   // Requires Name
	TKeyBirthdayShow    = "msg_birthday_show"    // Requires Name, Birthday
	TKeyBirthdayNone    = "msg_birthday_none"    // Requires Name
	TKeyNoUpcoming      = "msg_no_upcoming"
	TKeyContactDeleted  = "msg_contact_deleted"  // Requires Name
	TKeyImported        = "msg_imported"         // Requires Count, Source
	TKeyExported        = "msg_exported"         // Requires Count, Path
	TKeyCalendarWritten = "msg_calendar_written" // Requires Count, Path
	TKeyLoginStored     = "msg_login_stored"     // Requires User
	TKeyEvtSummary      = "event_summary"        // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"    // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth"  // Requires Name

	// Error lines
	TKeyErrPrefix     = "err_prefix"      // Requires Message
	TKeyErrNotFound   = "err_not_found"   // Requires Name
	TKeyErrPhoneMiss  = "err_phone_miss"  // Requires Phone
	TKeyErrPhone      = "err_phone"
	TKeyErrDate       = "err_date"
	TKeyErrName       = "err_name"
	TKeyErrAlreadySet = "err_already_set"
	TKeyErrUnknownCmd = "err_unknown_command"
	TKeyErrSave       = "err_save"   // Requires Cause
	TKeyErrImport     = "err_import" // Requires Cause
	TKeyErrExport     = "err_export" // Requires Cause
	TKeyErrLogin      = "err_login"  // Requires Cause

	// Usage lines, one per command
	TKeyUsageAdd          = "usage_add"
	TKeyUsageChange       = "usage_change"
	TKeyUsagePhone        = "usage_phone"
	TKeyUsageAll          = "usage_all"
	TKeyUsageAddBirthday  = "usage_add_birthday"
	TKeyUsageShowBirthday = "usage_show_birthday"
	TKeyUsageBirthdays    = "usage_birthdays"
	TKeyUsageDelete       = "usage_delete"
	TKeyUsageRemovePhone  = "usage_remove_phone"
	TKeyUsageImport       = "usage_import"
	TKeyUsageExport       = "usage_export"
	TKeyUsageCalendar     = "usage_calendar"
	TKeyUsageLogin        = "usage_login"
	TKeyUsageHello        = "usage_hello"
	TKeyUsageHelp         = "usage_help"
	TKeyUsageExit         = "usage_exit"
	TKeyUsageClose        = "usage_close"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage    = "en"
	DefaultHorizonDays = 7
	PhoneDigits        = 10
	UIDSalt            = "go-phonebook-v1-" // Salt for deterministic UID generation
	SourceSchemeSep    = "://"
)

// PhoneRule is the validator tag applied to raw phone numbers.
// "number" only admits ASCII digits.
const PhoneRule = "required,len=10,number"

// -----------------------------------------------------------------------------
// Display Formats
// -----------------------------------------------------------------------------

const (
	DateFormatBirthday = "02.01.2006"
	FormatDescribe     = "Contact name: %s, phones: %s, birthday: %s"
	PhoneSeparator     = "; "
	PhoneListSeparator = ", "
	BirthdayNone       = "None"
)

// -----------------------------------------------------------------------------
// Snapshot Format
// -----------------------------------------------------------------------------

const (
	SnapshotMagic   = "GO-PHONEBOOK-SNAPSHOT"
	SnapshotVersion = "1"
	// FormatSnapshotHeader expects magic, version and the hex SHA-256 of the body.
	FormatSnapshotHeader = "%s %s %s\n"
	SnapshotHeaderFields = 3
	SnapshotTempPattern  = ".snapshot-*.tmp"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Phonebook//Engine//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gophonebook"

	// iCal Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardVersion = "4.0"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no contact has a birthday.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted in vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat      = "Phone number must be 10 digits and contain only digits"
	ErrDateFormat       = "Invalid date format. Use DD.MM.YYYY"
	ErrNameEmpty        = "Contact name cannot be empty"
	ErrBirthdayExists   = "Birthday already exists for this record"
	ErrRecordNotFound   = "record not found"
	ErrValidationFailed = "validation failed"
	ErrUsageText        = "wrong number of arguments"
	ErrUnknownCommand   = "unknown command"
	ErrPersistence      = "address book persistence failed"
	ErrSnapshotHeader   = "snapshot header is malformed"
	ErrSnapshotMagic    = "not an address book snapshot"
	ErrSnapshotVersion  = "unsupported snapshot version"
	ErrSnapshotChecksum = "snapshot checksum mismatch"
	ErrSnapshotCard     = "snapshot contains an invalid contact"
	ErrSnapshotDupName  = "snapshot contains a duplicate contact name"
	ErrSnapshotNoName   = "snapshot contact has no name"
	ErrSnapshotRead     = "failed to read snapshot"
	ErrSnapshotWrite    = "failed to write snapshot"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSourceEmpty      = "import source is empty"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrNoVCard          = "no vCard found"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrYearUnknown      = "birthday has no year"
	ErrCredentials      = "credential store failure"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrInputRead        = "failed to read input"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, saving address book"
	MsgSnapshotLoaded = "Address book loaded"
	MsgSnapshotFresh  = "No snapshot found, starting with an empty address book"
	MsgSnapshotSaved  = "Address book saved"
	MsgCommand        = "Command executed"
	MsgCommandFailed  = "Command failed"
	MsgImportStarted  = "vCard import started"
	MsgImportDone     = "vCard import finished"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedPhone   = "Skipping invalid phone number"
	MsgSkippedDate    = "Skipping invalid birthday"
	MsgSkippedName    = "Skipping vCard without name"
	MsgGenSuccess     = "Calendar generation successful"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeySource    = "source"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeySkipped   = "skipped"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompEngine   = "engine"
	CompSnapshot = "snapshot"
	CompImporter = "importer"
	CompFetcher  = "fetcher"
	CompCommands = "commands"
	CompI18n     = "i18n"
)
