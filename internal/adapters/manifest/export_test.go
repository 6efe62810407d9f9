package manifest

// NewLoaderWithFS exposes the filesystem-injecting constructor for tests.
var NewLoaderWithFS = newLoaderWithFS
