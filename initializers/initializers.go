package initializers

import (
	"context"
	"hirex-backend/config"
	"hirex-backend/fiberlog"
	approvalworkflow "hirex-backend/lib/approval-workflow"
	reminderworker "hirex-backend/lib/approval-workflow/reminder-worker"
	departmentprovider "hirex-backend/lib/dicts/department"
	jobtitleprovider "hirex-backend/lib/dicts/job-title"
	xlsexport "hirex-backend/lib/export/xls"
	jobdescriptionhandler "hirex-backend/lib/job-description"
	jobrequisitionhandler "hirex-backend/lib/job-requisition"
	notificationretryworker "hirex-backend/lib/notification/retry-worker"
	"hirex-backend/lib/rbac"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitRedis(ctx)
	InitS3(ctx)
	InitSmtp()
	departmentprovider.NewHandler()
	jobtitleprovider.NewHandler()
	xlsexport.NewHandler()
	approvalworkflow.NewHandler()
	jobrequisitionhandler.NewHandler()
	jobdescriptionhandler.NewHandler()
	rbac.NewHandler()
	go initWorkers(ctx)
}

// started apart from each other to spread the load
func initWorkers(ctx context.Context) {
	reminderworker.StartWorker(ctx)

	select {
	case <-ctx.Done():
		return
	case <-time.After(10 * time.Second):
	}
	notificationretryworker.StartWorker(ctx, emailSink)
}
