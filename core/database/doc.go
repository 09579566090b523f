// Package database opens the SQL database backing the run journal.
//
// It supports a local sqlite file (the default, no server needed) and MySQL
// for teams sharing one journal. Connections are made through GORM with its
// own logging silenced.
//
// # Usage
//
//	db, err := database.Connect(cfg.Journal)
//	if err != nil {
//	    log.Warn("journal unavailable", zap.Error(err))
//	}
package database
