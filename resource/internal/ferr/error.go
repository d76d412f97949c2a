package ferr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument       = errors.New("resource: invalid argument")
	ErrNotFound              = errors.New("resource: not found")
	ErrUnsupportedExpression = errors.New("resource: unsupported expression")
	ErrMissingField          = errors.New("resource: missing field")
	ErrInternalConsistency   = errors.New("resource: internal consistency")
)

func ErrEmptyIdentifier() error {
	return fmt.Errorf("%w: empty identifier", ErrInvalidArgument)
}

func ErrInvalidIdentifier(name string) error {
	return fmt.Errorf("%w: malformed identifier %q", ErrInvalidArgument, name)
}

func ErrUnknownField(field string) error {
	return fmt.Errorf("%w: field %q is not mapped to a column", ErrNotFound, field)
}

func ErrUnknownColumn(col string) error {
	return fmt.Errorf("%w: column %q is not mapped to a field", ErrNotFound, col)
}

func ErrDuplicateField(field string) error {
	return fmt.Errorf("%w: field %q mapped twice", ErrInvalidArgument, field)
}

func ErrDuplicateColumn(col string) error {
	return fmt.Errorf("%w: column %q mapped twice", ErrInvalidArgument, col)
}

func ErrNoTemplate(op any) error {
	return fmt.Errorf("%w: no template for operator %v", ErrUnsupportedExpression, op)
}

func ErrInvalidTerm(t any) error {
	return fmt.Errorf("%w: unknown term %T", ErrUnsupportedExpression, t)
}

func ErrArity(op any, want string, got int) error {
	return fmt.Errorf("%w: operator %v expects %s operands, got %d", ErrInvalidArgument, op, want, got)
}

func ErrRecordMissingField(row int, field string) error {
	return fmt.Errorf("%w: record %d has no value for %q", ErrMissingField, row, field)
}

func ErrRecordExtraField(row int, field string) error {
	return fmt.Errorf("%w: record %d sets %q which is not an inserted column", ErrInvalidArgument, row, field)
}

func ErrEmptyRecord(row int) error {
	return fmt.Errorf("%w: record %d sets no field", ErrInvalidArgument, row)
}

func ErrEmptyChangeSet() error {
	return fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
}

func ErrNoRecords() error {
	return fmt.Errorf("%w: nothing to insert", ErrInvalidArgument)
}

func ErrNoTable() error {
	return fmt.Errorf("%w: no table configured", ErrInvalidArgument)
}

func ErrInvalidJoinCondition(cond any) error {
	return fmt.Errorf("%w: join condition %v names no joinable table", ErrInvalidArgument, cond)
}

func ErrHashCollision(key string, stored, incoming any) error {
	return fmt.Errorf("%w: placeholder %s already bound to %#v, cannot bind %#v", ErrInternalConsistency, key, stored, incoming)
}

func ErrUnboundPlaceholder(key string) error {
	return fmt.Errorf("%w: placeholder :%s has no bound value", ErrInternalConsistency, key)
}

func ErrNilTemplates() error {
	return fmt.Errorf("%w: template registry is nil", ErrInvalidArgument)
}

func ErrNoExecutor() error {
	return fmt.Errorf("%w: no executor configured", ErrInvalidArgument)
}

func ErrInvalidTag(tag string) error {
	return fmt.Errorf("%w: invalid tag %s", ErrInvalidArgument, tag)
}

func ErrUnknownQueryType(typ string) error {
	return fmt.Errorf("%w: unknown query type %s", ErrInvalidArgument, typ)
}

func ErrRepeatedField(field string) error {
	return fmt.Errorf("%w: field %q assigned more than once", ErrInvalidArgument, field)
}

func ErrUnjoinedTable(table string) error {
	return fmt.Errorf("%w: table %q is configured but no join condition brings it in", ErrInvalidArgument, table)
}

func ErrOffsetWithoutLimit(offset int) error {
	return fmt.Errorf("%w: offset %d requires a limit", ErrInvalidArgument, offset)
}
