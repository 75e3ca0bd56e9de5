package gotable

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockDBFactory func() (string, *gorm.DB, sqlmock.Sqlmock, error)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db, mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db, mock, nil
}

// member is the record type shared by the tests of this package.
type member struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Protected bool   `json:"protected"`
	User      *user  `json:"user"`
}

type user struct {
	Name      string
	CreatedAt string `json:"created_at"`
}

func memberID(m member) int {
	return m.ID
}

func memberIDs(members []member) []int {
	ids := make([]int, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	return ids
}
