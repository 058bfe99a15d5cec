// Package tracking holds the message-to-record core: the field vocabulary,
// the shorthand parser, the ordered update set, confirmation formatting and
// the logical day used as the record key.
package tracking
