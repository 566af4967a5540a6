package vkboot

// reportFlags are the event classes the callback is registered for.
const reportFlags = DebugError | DebugWarning | DebugPerformanceWarning

// DebugReport is an attached validation callback.
type DebugReport struct {
	Callback DebugCallback

	driver Driver
}

// DiagnosticsBridge attaches and detaches the validation message callback.
type DiagnosticsBridge struct {
	Driver Driver
}

// Attach registers HandleDebugMessage with the instance. When diagnostics
// are disabled it returns a nil report and does nothing.
func (b DiagnosticsBridge) Attach(session *Session, enabled bool) (*DebugReport, error) {
	if !enabled {
		return nil, nil
	}
	callback, err := b.Driver.CreateDebugCallback(session.Instance, reportFlags, HandleDebugMessage)
	if err != nil {
		return nil, markf(err, ErrDiagnosticsFailed, "create debug report callback")
	}
	logger.Infof("debug report callback enabled")
	return &DebugReport{Callback: callback, driver: b.Driver}, nil
}

// Detach removes the callback. It must run before the session is destroyed
// and is a no-op for a nil or already detached report.
func (b DiagnosticsBridge) Detach(session *Session, report *DebugReport) {
	report.destroy(session)
}

func (r *DebugReport) destroy(session *Session) {
	if r == nil || r.Callback == nil || session == nil || session.Instance == nil {
		return
	}
	r.driver.DestroyDebugCallback(session.Instance, r.Callback)
	r.Callback = nil
}

// HandleDebugMessage is the validation callback. The driver may call it from
// any thread, so it touches nothing except the logger. Errors ask the driver
// to abort the offending call; everything else lets it continue.
func HandleDebugMessage(msg DebugMessage) bool {
	switch {
	case msg.Flags&DebugError != 0:
		logger.Errorf("VALIDATION ERROR: [%s] Code %d : %s", msg.LayerPrefix, msg.Code, msg.Text)
		return true
	case msg.Flags&DebugWarning != 0:
		logger.Warningf("VALIDATION WARNING: [%s] Code %d : %s", msg.LayerPrefix, msg.Code, msg.Text)
	case msg.Flags&DebugPerformanceWarning != 0:
		logger.Warningf("VALIDATION PERFORMANCE WARNING: [%s] Code %d : %s", msg.LayerPrefix, msg.Code, msg.Text)
	}
	return false
}
