package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brainiax/attendance-backend-go/internal/config"
	"github.com/brainiax/attendance-backend-go/internal/pkg/database"
	"github.com/brainiax/attendance-backend-go/internal/repository/postgresql"
)

// Maintenance task: removes attendance records whose employee no longer
// exists or was deactivated. Run manually or from an external scheduler.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	attendanceRepo := postgresql.NewAttendanceRepository(db)

	var removed int64
	err = postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
		var err error
		removed, err = attendanceRepo.DeleteOrphaned(txCtx)
		return err
	})
	if err != nil {
		fmt.Println("Cleanup failed:", err)
		os.Exit(1)
	}

	fmt.Printf("Removed %d orphaned attendance records\n", removed)
}
