package businesshours

import "github.com/m04kA/SMC-ReservationEngine/pkg/dbmetrics"

// DBExecutor исполнитель запросов (*sql.DB, *dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor
