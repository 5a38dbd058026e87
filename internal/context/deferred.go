package context

// Defer schedules fn to run once handle's submission retires. An empty
// handle defaults to the command pool's next-submit handle, i.e. "run once
// whatever is currently being recorded finishes" (vulkanClasses.cpp:989-997).
func (c *Context) Defer(h SubmitHandle, fn func()) {
	if h.Empty() {
		h = c.commandPool.GetNextSubmitHandle()
	}
	c.deferredTasks.PushBack(deferredTask{handle: h, fn: fn})
}

// processDeferredTasks pops and runs every deferred task at the front of
// the queue whose submission has retired, using the fast (non-blocking)
// readiness check. Grounded on vulkanClasses.cpp:976-986.
func (c *Context) processDeferredTasks() {
	for e := c.deferredTasks.Front(); e != nil; e = c.deferredTasks.Front() {
		task := e.Value.(deferredTask)
		if !c.commandPool.IsReady(task.handle, true) {
			break
		}
		task.fn()
		c.deferredTasks.Remove(e)
	}
}

// waitOnDeferredTasks blocks on every remaining deferred task's handle, in
// order, and runs it. Used only at teardown. Grounded on
// vulkanClasses.cpp:1220-1229.
func (c *Context) waitOnDeferredTasks() {
	for e := c.deferredTasks.Front(); e != nil; e = e.Next() {
		task := e.Value.(deferredTask)
		c.commandPool.Wait(task.handle)
		task.fn()
	}
	c.deferredTasks.Init()
}
