package domain

// ResourceStatus represents the live occupancy state of a resource.
type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceInUse       ResourceStatus = "in_use"
	ResourceMaintenance ResourceStatus = "maintenance"
	ResourceOffline     ResourceStatus = "offline"
	ResourceNotTracked  ResourceStatus = "not_tracked"
)

// SettableResourceStatuses are the statuses accepted as a manual override.
// not_tracked is derived from the resource configuration and cannot be set.
var SettableResourceStatuses = []ResourceStatus{
	ResourceAvailable,
	ResourceInUse,
	ResourceMaintenance,
	ResourceOffline,
}

// IsSettableResourceStatus reports whether s may be stored as a manual override.
func IsSettableResourceStatus(s ResourceStatus) bool {
	for _, valid := range SettableResourceStatuses {
		if s == valid {
			return true
		}
	}
	return false
}
