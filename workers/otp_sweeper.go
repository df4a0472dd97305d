// workers/otp_sweeper.go
package workers

import (
	"time"

	"card-collection-system/services"
	"card-collection-system/utils/logger"

	"github.com/go-co-op/gocron/v2"
)

// StartOTPSweeper clears expired transfer codes once a minute. Validation
// checks expiry on every use anyway; the sweeper just keeps dead secrets from
// lingering in the ownership table.
func StartOTPSweeper(transfers *services.TransferService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			cleared, err := transfers.CleanupExpiredCodes()
			if err != nil {
				logger.Errorf("[OTPSweeper] %v", err)
				return
			}
			if cleared > 0 {
				logger.Infof("[OTPSweeper] cleared %d expired transfer codes", cleared)
			}
		}),
	)
}
