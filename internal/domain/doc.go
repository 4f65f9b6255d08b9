// Package domain contains the types shared by every part of the component
// model. The component tree itself lives in sub-packages (domain/property,
// domain/model, domain/component, domain/theme); this root package holds
// sentinel errors, validation and veto errors, notifications, task states,
// the Class hierarchy used for dispatch and theming, and the Action interface
// used by request-scoped commits.
package domain
