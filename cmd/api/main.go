package main

import (
	"fmt"
	"net/http"

	"github.com/collable/pointage-backend/internal/config"
	"github.com/collable/pointage-backend/internal/domain/payroll"
	appHTTP "github.com/collable/pointage-backend/internal/handler/http"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/collable/pointage-backend/internal/pkg/jwt"
	"github.com/collable/pointage-backend/internal/repository/postgresql"
	agentService "github.com/collable/pointage-backend/internal/service/agent"
	apikeyService "github.com/collable/pointage-backend/internal/service/apikey"
	attendanceService "github.com/collable/pointage-backend/internal/service/attendance"
	authService "github.com/collable/pointage-backend/internal/service/auth"
	bonusService "github.com/collable/pointage-backend/internal/service/bonus"
	holidayService "github.com/collable/pointage-backend/internal/service/holiday"
	payrollService "github.com/collable/pointage-backend/internal/service/payroll"
	qrcodeService "github.com/collable/pointage-backend/internal/service/qrcode"
	reportService "github.com/collable/pointage-backend/internal/service/report"
	trackingService "github.com/collable/pointage-backend/internal/service/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	agentRepo := postgresql.NewAgentRepository(db)
	eventRepo := postgresql.NewScanEventRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	bonusRepo := postgresql.NewBonusRepository(db)
	codeRepo := postgresql.NewCodeRepository(db)
	keyRepo := postgresql.NewAPIKeyRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	params := payroll.DefaultParameters()

	authSvc := authService.NewAuthService(agentRepo, jwtSvc, jwtRepo)
	agentSvc := agentService.NewAgentService(agentRepo)
	codeSvc := qrcodeService.NewQRCodeService(codeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, agentRepo, codeSvc)
	trackingSvc := trackingService.NewTrackingService(agentRepo, eventRepo, holidayRepo, params)
	payrollSvc := payrollService.NewPayrollService(agentRepo, eventRepo, bonusRepo, params)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, agentRepo)
	bonusSvc := bonusService.NewBonusService(bonusRepo, agentRepo)
	keySvc := apikeyService.NewAPIKeyService(keyRepo)
	reportSvc := reportService.NewReportService(agentRepo, eventRepo, holidayRepo, payrollSvc, trackingSvc, params)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Agent:      appHTTP.NewAgentHandler(agentSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Tracking:   appHTTP.NewTrackingHandler(trackingSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		QRCode:     appHTTP.NewQRCodeHandler(codeSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Bonus:      appHTTP.NewBonusHandler(bonusSvc),
		APIKey:     appHTTP.NewAPIKeyHandler(keySvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(jwtSvc, keySvc, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
