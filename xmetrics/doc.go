/*
Package xmetrics provides the metric plumbing shared by the interception
components.  Components declare their metrics via a Module function and
accept narrow Adder/Setter/Observer dependencies, defaulting to discard
implementations so that metrics remain strictly optional.
*/
package xmetrics
