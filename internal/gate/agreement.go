// Copyright (c) 2025 StegVault Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package gate

// AgreementTitle is the heading shown above the agreement text.
const AgreementTitle = "Non-Disclosure Agreement (NDA)"

// AgreementText is the confidentiality agreement the operator must read to
// the end before acceptance is allowed. Markdown, rendered by the UI.
//
// The scroll-to-end precondition belongs to the presentation layer; the
// controller trusts its caller and does not re-validate it.
const AgreementText = `# Non-Disclosure Agreement (NDA)

*Confidential Collaboration Protocol*

This Non-Disclosure Agreement ("Agreement") outlines the confidentiality
terms between the authorized user ("Collaborator") and this platform
("System").

By proceeding, you acknowledge that all proprietary algorithms, encryption
models, datasets, and backend frameworks are classified. Unauthorized
disclosure, duplication, or analysis is strictly prohibited.

All transmitted and stored data within this environment are monitored and
secured with full traceability. Every interaction is logged and verified
for compliance integrity.

Collaborators are required to:

1. Refrain from reverse engineering or replicating platform mechanisms.
2. Protect intellectual property in all project phases.
3. Report any breach or irregular access immediately.

Breach of this Agreement results in immediate access revocation, data
nullification, and possible legal proceedings under applicable digital
protection acts.

By agreeing, you affirm that you understand the sensitive nature of the
materials shared and accept full legal responsibility for upholding
confidentiality.

Access is provided only upon successful validation of your digital
identity and compliance acknowledgment. All user activity is logged.
`
