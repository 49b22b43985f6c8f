package planetscale

import (
	"database/sql"
	"fmt"

	appDb "github.com/kabsu-me/kabsu-be/db"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"

	"github.com/kabsu-me/kabsu-be/config"
)

type PlanetScaleDB struct {
	*UserDB
	*PostDB
	*FollowDB
	*TaxonomyDB
	*ChatDB
	*NglDB
	*ProfessorDB
	*NotificationDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (appDb.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &PlanetScaleDB{
		UserDB:         getUserDB(sess),
		PostDB:         getPostDB(sess),
		FollowDB:       getFollowDB(sess),
		TaxonomyDB:     getTaxonomyDB(sess),
		ChatDB:         getChatDB(sess),
		NglDB:          getNglDB(sess),
		ProfessorDB:    getProfessorDB(sess),
		NotificationDB: getNotificationDB(sess),
		sess:           sess,
		sqlDB:          sqlDB,
	}, nil
}

func (psdb *PlanetScaleDB) GetSQLDB() *sql.DB {
	return psdb.sqlDB
}

func (psdb *PlanetScaleDB) Close() error {
	return psdb.sess.Close()
}
