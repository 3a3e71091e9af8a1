package filter

import "strconv"

// Special query functions live under the Microsoft.Dynamics.CRM namespace
// and come in four fixed shapes: name-only, single value, two values and
// many values. The shapes are implemented once; the catalog below binds
// each function name to its shape.
const crmPrefix = "Microsoft.Dynamics.CRM."

func nameOnly(operator, column string, opts []Option) string {
	s := newSettings(opts)
	return s.wrap(s.indicator() + crmPrefix + operator + "(PropertyName='" + column + "')")
}

func singleValue(operator, column, rendered string, opts []Option) string {
	s := newSettings(opts)
	return s.wrap(s.indicator() + crmPrefix + operator +
		"(PropertyName='" + column + "',PropertyValue=" + rendered + ")")
}

func twoValues(operator, column, rendered1, rendered2 string, opts []Option) string {
	s := newSettings(opts)
	return s.wrap(s.indicator() + crmPrefix + operator +
		"(PropertyName='" + column + "',PropertyValue1=" + rendered1 + ",PropertyValue2=" + rendered2 + ")")
}

func manyValues(operator, column string, values []any, opts []Option) (string, error) {
	s := newSettings(opts)

	list := "["
	for i, value := range values {
		rendered, err := quotedLiteral(value)
		if err != nil {
			return "", err
		}
		if i > 0 {
			list += ","
		}
		list += rendered
	}
	list += "]"

	return s.wrap(s.indicator() + crmPrefix + operator +
		"(PropertyName='" + column + "',PropertyValues=" + list + ")"), nil
}

// Value checks

// In evaluates whether the value in the given column exists in a list of values.
func In(column string, values []any, opts ...Option) (string, error) {
	return manyValues("In", column, values, opts)
}

// NotIn evaluates whether the value in the given column doesn't exist in a
// list of values.
func NotIn(column string, values []any, opts ...Option) (string, error) {
	return manyValues("NotIn", column, values, opts)
}

// Between evaluates whether the value in the given column is between two values.
func Between(column string, lower, upper any, opts ...Option) (string, error) {
	return manyValues("Between", column, []any{lower, upper}, opts)
}

// NotBetween evaluates whether the value in the given column is not between
// two values.
func NotBetween(column string, lower, upper any, opts ...Option) (string, error) {
	return manyValues("NotBetween", column, []any{lower, upper}, opts)
}

// ContainValues evaluates whether the value in the given column contains the
// listed values.
func ContainValues(column string, values []any, opts ...Option) (string, error) {
	return manyValues("ContainValues", column, values, opts)
}

// NotContainValues evaluates whether the value in the given column doesn't
// contain the listed values.
func NotContainValues(column string, values []any, opts ...Option) (string, error) {
	return manyValues("DoesNotContainValues", column, values, opts)
}

// Hierarchy checks

// Above evaluates whether the value in the given column is above ref in the
// hierarchy.
func Above(column string, ref any, opts ...Option) (string, error) {
	return hierarchy("Above", column, ref, opts)
}

// AboveOrEqual evaluates whether the value in the given column is above or
// equal to ref in the hierarchy.
func AboveOrEqual(column string, ref any, opts ...Option) (string, error) {
	return hierarchy("AboveOrEqual", column, ref, opts)
}

// Under evaluates whether the value in the given column is below ref in the
// hierarchy.
func Under(column string, ref any, opts ...Option) (string, error) {
	return hierarchy("Under", column, ref, opts)
}

// UnderOrEqual evaluates whether the value in the given column is under or
// equal to ref in the hierarchy.
func UnderOrEqual(column string, ref any, opts ...Option) (string, error) {
	return hierarchy("UnderOrEqual", column, ref, opts)
}

// NotUnder evaluates whether the value in the given column is not below ref
// in the hierarchy.
func NotUnder(column string, ref any, opts ...Option) (string, error) {
	return hierarchy("NotUnder", column, ref, opts)
}

func hierarchy(operator, column string, ref any, opts []Option) (string, error) {
	rendered, err := quotedLiteral(ref)
	if err != nil {
		return "", err
	}
	return singleValue(operator, column, rendered, opts), nil
}

// Dates - on

// On evaluates whether the date in the given column is on the specified date.
func On(column, date string, opts ...Option) string {
	return singleValue("On", column, "'"+date+"'", opts)
}

// OnOrAfter evaluates whether the date in the given column is on or after
// the specified date.
func OnOrAfter(column, date string, opts ...Option) string {
	return singleValue("OnOrAfter", column, "'"+date+"'", opts)
}

// OnOrBefore evaluates whether the date in the given column is on or before
// the specified date.
func OnOrBefore(column, date string, opts ...Option) string {
	return singleValue("OnOrBefore", column, "'"+date+"'", opts)
}

// Dates - fiscal periods

// InFiscalPeriod evaluates whether the date in the given column is within
// the specified fiscal period.
func InFiscalPeriod(column string, period int, opts ...Option) string {
	return singleValue("InFiscalPeriod", column, strconv.Itoa(period), opts)
}

// InFiscalYear evaluates whether the date in the given column is within the
// specified fiscal year.
func InFiscalYear(column string, year int, opts ...Option) string {
	return singleValue("InFiscalYear", column, strconv.Itoa(year), opts)
}

// InFiscalPeriodAndYear evaluates whether the date in the given column is
// within the specified fiscal period and year.
func InFiscalPeriodAndYear(column string, period, year int, opts ...Option) string {
	return twoValues("InFiscalPeriodAndYear", column, strconv.Itoa(period), strconv.Itoa(year), opts)
}

// InOrAfterFiscalPeriodAndYear evaluates whether the date in the given
// column is within or after the specified fiscal period and year.
func InOrAfterFiscalPeriodAndYear(column string, period, year int, opts ...Option) string {
	return twoValues("InOrAfterFiscalPeriodAndYear", column, strconv.Itoa(period), strconv.Itoa(year), opts)
}

// InOrBeforeFiscalPeriodAndYear evaluates whether the date in the given
// column is within or before the specified fiscal period and year.
func InOrBeforeFiscalPeriodAndYear(column string, period, year int, opts ...Option) string {
	return twoValues("InOrBeforeFiscalPeriodAndYear", column, strconv.Itoa(period), strconv.Itoa(year), opts)
}

// newNameOnlyFunc binds a name-only special query function to its operator.
func newNameOnlyFunc(operator string) func(column string, opts ...Option) string {
	return func(column string, opts ...Option) string {
		return nameOnly(operator, column, opts)
	}
}

// newXValueFunc binds an "X units" special query function to its operator.
func newXValueFunc(operator string) func(column string, x int, opts ...Option) string {
	return func(column string, x int, opts ...Option) string {
		return singleValue(operator, column, strconv.Itoa(x), opts)
	}
}

// Name-only date functions.
var (
	Today     = newNameOnlyFunc("Today")
	Tomorrow  = newNameOnlyFunc("Tomorrow")
	Yesterday = newNameOnlyFunc("Yesterday")

	ThisFiscalPeriod = newNameOnlyFunc("ThisFiscalPeriod")
	ThisFiscalYear   = newNameOnlyFunc("ThisFiscalYear")
	ThisMonth        = newNameOnlyFunc("ThisMonth")
	ThisWeek         = newNameOnlyFunc("ThisWeek")
	ThisYear         = newNameOnlyFunc("ThisYear")

	Last7Days        = newNameOnlyFunc("Last7Days")
	LastFiscalPeriod = newNameOnlyFunc("LastFiscalPeriod")
	LastFiscalYear   = newNameOnlyFunc("LastFiscalYear")
	LastMonth        = newNameOnlyFunc("LastMonth")
	LastWeek         = newNameOnlyFunc("LastWeek")
	LastYear         = newNameOnlyFunc("LastYear")

	NextFiscalPeriod = newNameOnlyFunc("NextFiscalPeriod")
	NextFiscalYear   = newNameOnlyFunc("NextFiscalYear")
	NextMonth        = newNameOnlyFunc("NextMonth")
	NextWeek         = newNameOnlyFunc("NextWeek")
	NextYear         = newNameOnlyFunc("NextYear")
)

// "Last X" / "Next X" / "Older than X" date functions.
var (
	LastXDays          = newXValueFunc("LastXDays")
	LastXFiscalPeriods = newXValueFunc("LastXFiscalPeriods")
	LastXFiscalYears   = newXValueFunc("LastXFiscalYears")
	LastXHours         = newXValueFunc("LastXHours")
	LastXMonths        = newXValueFunc("LastXMonths")
	LastXWeeks         = newXValueFunc("LastXWeeks")
	LastXYears         = newXValueFunc("LastXYears")

	NextXDays          = newXValueFunc("NextXDays")
	NextXFiscalPeriods = newXValueFunc("NextXFiscalPeriods")
	NextXFiscalYears   = newXValueFunc("NextXFiscalYears")
	NextXHours         = newXValueFunc("NextXHours")
	NextXMonths        = newXValueFunc("NextXMonths")
	NextXWeeks         = newXValueFunc("NextXWeeks")
	NextXYears         = newXValueFunc("NextXYears")

	OlderThanXDays    = newXValueFunc("OlderThanXDays")
	OlderThanXHours   = newXValueFunc("OlderThanXHours")
	OlderThanXMinutes = newXValueFunc("OlderThanXMinutes")
	OlderThanXMonths  = newXValueFunc("OlderThanXMonths")
	OlderThanXWeeks   = newXValueFunc("OlderThanXWeeks")
	OlderThanXYears   = newXValueFunc("OlderThanXYears")
)

// Business and user identity functions.
var (
	EqualBusinessID = newNameOnlyFunc("EqualBusinessId")
	NotBusinessID   = newNameOnlyFunc("NotBusinessId")

	EqualUserID       = newNameOnlyFunc("EqualUserId")
	NotUserID         = newNameOnlyFunc("NotUserId")
	EqualUserLanguage = newNameOnlyFunc("EqualUserLanguage")

	EqualUserOrUserHierarchy         = newNameOnlyFunc("EqualUserOrUserHierarchy")
	EqualUserOrUserHierarchyAndTeams = newNameOnlyFunc("EqualUserOrUserHierarchyAndTeams")
	EqualUserOrUserTeams             = newNameOnlyFunc("EqualUserOrUserTeams")
	EqualUserTeams                   = newNameOnlyFunc("EqualUserTeams")
)
