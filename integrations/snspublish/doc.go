/*
Package snspublish traces publish calls made through the AWS SNS client.

The package is the model for authoring an integration: it declares its
targets as a descriptor table, reads the intercepted request through a
structural shape rather than importing the SDK, and reports anything it
cannot bind as an error for the fault barrier to classify.
*/
package snspublish
