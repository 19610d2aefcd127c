package mysql

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/juanpineyrob/dscommerce/domain/shared"
)

// MySQL error numbers relevant to the repositories.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// translateError converts driver and GORM faults into the shared error
// vocabulary. This is the only place persistence faults are classified;
// everything above the repositories branches on the shared sentinels.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return shared.NewIntegrityError(entity, "referential integrity violation")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewConflictError(entity, entity+" already exists")
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow:
			return shared.NewIntegrityError(entity, "referential integrity violation")
		case mysqlErrDuplicateEntry:
			return shared.NewConflictError(entity, entity+" already exists")
		}
	}

	return err
}
