// Package premium turns a loosely typed prediction request into the fixed-order
// feature vector the premium model was trained on, and asks the model for a
// prediction.
//
// The feature order is a contract with the model artifact:
//
//	[age, bmi, isSmoker, region, children, gender]
//
// Changing it requires retraining the model.
package premium
