package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background inbox processing.
// Example usage:
//
//	scheduler := NewScheduler(st, gateway, engine, recorder)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
