// Package lib holds modules that do not fit strictly into other layers:
// background jobs on Asynq (job) and the Resend email client (email).
package lib
