package metrics

// Analysis.

// RecordAnalysis counts a finished analysis and observes its latency.
func RecordAnalysis(kind, outcome string, latencyMs float64) {
	globalManager.analyses.WithLabelValues(kind, outcome).Inc()
	globalManager.analysisLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordInputRecords adds n received records for an analysis kind.
func RecordInputRecords(kind string, n int) {
	globalManager.inputRecords.WithLabelValues(kind).Add(float64(n))
}

// RecordEventsAnalyzed adds n produced event analyses.
func RecordEventsAnalyzed(n int) {
	globalManager.eventsAnalyzed.Add(float64(n))
}

// RecordComparisonsProduced adds n produced comparisons.
func RecordComparisonsProduced(n int) {
	globalManager.comparisonsProduced.Add(float64(n))
}

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Queue.

// UpdateQueue publishes the queue size, capacity and utilization together.
func UpdateQueue(size, capacity int) {
	globalManager.queueSize.Set(float64(size))
	globalManager.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		globalManager.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

func RecordQueueEnqueue()  { globalManager.queueEnqueued.Inc() }
func RecordQueueDequeue()  { globalManager.queueDequeued.Inc() }
func RecordQueueRejected() { globalManager.queueRejected.Inc() }

// RecordQueueWait records how long a task waited before a worker picked it up.
func RecordQueueWait(latencyMs float64) {
	globalManager.queueWaitLatency.Observe(latencyMs)
}

// Workers.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerBusy sets the number of workers running a task.
func UpdateWorkerBusy(count int) {
	globalManager.workerBusy.Set(float64(count))
}

// RecordWorkerProcessingLatency records task execution time.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerPanic counts a recovered task panic.
func RecordWorkerPanic() {
	globalManager.workerPanics.Inc()
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Runtime.

// UpdateSystemMemoryUsage sets heap bytes in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}
