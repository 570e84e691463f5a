// Package router maps paths to terminal views and keeps a navigation
// history.
//
// A view is mounted while it is the router's current view. Views that
// implement Mounter get Mount with a context that is cancelled when they are
// replaced, and Unmount right after. Navigation requested while another
// navigation is mounting (for instance a guard redirecting from its Mount)
// is queued and applied in order.
package router
