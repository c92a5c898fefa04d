package coordinatornode

// ResolveSession pins the request to a live session and captures the context
// snapshot the planner and specialists will work from. Turns are written back
// only after synthesis so the snapshot reflects the conversation before this
// message.
func ResolveSession(in *GraphState, store SessionStore) (*GraphState, error) {
	id, created := store.ResolveOrCreate(in.SessionID)
	in.SessionID = id
	in.SessionCreated = created
	in.Snapshot = store.Snapshot(id)
	return in, nil
}
